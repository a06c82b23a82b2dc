package sbom

import (
	"fmt"
	"strings"
)

// Format describes one serialization format of the delegate generator.
// Flag is the value the delegate expects after --format, Extension is
// appended to the output base name, and MediaType is used when a produced
// document is published as an OCI artifact.
type Format struct {
	Name      string
	Flag      string
	Extension string
	MediaType string
}

var (
	TagValue = Format{
		Name:      "tag-value",
		Flag:      "tv",
		Extension: ".spdx",
		MediaType: "text/spdx",
	}
	// Note: the RDF path is broken in the current upstream generator.
	// The flag is passed through unchanged so an upstream fix gets picked
	// up without changes here; until then it fails as a delegate failure.
	RDF = Format{
		Name:      "rdf",
		Flag:      "rdf",
		Extension: ".rdf",
		MediaType: "application/rdf+xml",
	}
)

func (it Format) String() string {
	return it.Name
}

func (it Format) Known() bool {
	return len(it.Flag) > 0
}

// KnownFormats lists the supported formats in presentation order.
func KnownFormats() []Format {
	return []Format{TagValue, RDF}
}

// SupportedFormatNames is the comma separated list used in error messages
// and CLI help texts.
func SupportedFormatNames() string {
	names := make([]string, 0, 2)
	for _, format := range KnownFormats() {
		names = append(names, format.Name)
	}
	return strings.Join(names, ", ")
}

// FormatByExtension recognizes a document file's format from its name,
// for callers that only hold a produced file and not the request that
// made it.
func FormatByExtension(path string) (Format, bool) {
	lowered := strings.ToLower(path)
	for _, format := range KnownFormats() {
		if strings.HasSuffix(lowered, format.Extension) {
			return format, true
		}
	}
	return Format{}, false
}

// ParseFormat resolves a user supplied format label into one of the known
// formats. Canonical names and common aliases are accepted case
// insensitively; anything else is an invalid request.
func ParseFormat(label string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "tag-value", "tagvalue", "tv", "spdx":
		return TagValue, nil
	case "rdf", "rdf-xml":
		return RDF, nil
	default:
		return Format{}, fmt.Errorf("%w: unsupported format %q, supported formats are: %s", ErrInvalidRequest, label, SupportedFormatNames())
	}
}
