package sbom

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spdxbridge/sdg/common"
)

// ErrInvalidRequest marks request validation failures. These are the only
// failures the bridge raises synchronously; everything after a spawn
// attempt is reported as a failed outcome instead. Test with errors.Is.
var ErrInvalidRequest = errors.New("invalid generation request")

// Request is one self contained generation order: which directory to scan,
// what to call the produced document, and which serialization to ask for.
// Requests are built immediately before an invocation and discarded after
// it; nothing is shared between two requests.
type Request struct {
	Directory string
	Name      string
	Format    Format
}

// NewRequest validates the caller supplied pieces into a Request. The
// directory's existence and readability are the delegate's to check; this
// only rejects values that could never form a valid delegate command.
func NewRequest(directory, name string, format Format) (*Request, error) {
	directory = strings.TrimSpace(directory)
	name = strings.TrimSpace(name)
	if len(directory) == 0 {
		return nil, fmt.Errorf("%w: target directory is required", ErrInvalidRequest)
	}
	if len(name) == 0 {
		return nil, fmt.Errorf("%w: output name is required", ErrInvalidRequest)
	}
	if strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("%w: output name %q must be a plain file base name", ErrInvalidRequest, name)
	}
	if !format.Known() {
		return nil, fmt.Errorf("%w: format is required, supported formats are: %s", ErrInvalidRequest, SupportedFormatNames())
	}
	return &Request{
		Directory: directory,
		Name:      name,
		Format:    format,
	}, nil
}

func (it *Request) validate() error {
	_, err := NewRequest(it.Directory, it.Name, it.Format)
	return err
}

// OutputFile is the file name the delegate is asked to write, relative to
// its working directory.
func (it *Request) OutputFile() string {
	return it.Name + it.Format.Extension
}

// Arguments is the ordered token vector appended to the resolved generator
// command. Tokens are passed to the process as-is, never joined into one
// shell string.
func (it *Request) Arguments() []string {
	return common.NewCommander(it.Directory).
		Option("--output", it.OutputFile()).
		Option("--format", it.Format.Flag).
		CLI()
}

// Fingerprint is a stable 16 hex digit correlation id for this request,
// used by the journal and in diagnostics. Same request, same fingerprint.
func (it *Request) Fingerprint() string {
	body := fmt.Sprintf("%s|%s|%s", it.Directory, it.Name, it.Format.Name)
	return common.Textual(common.Siphash(9007799254740993, 2147487647, []byte(body)), 0)
}
