package library

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spdxbridge/sdg/common"
	"github.com/spdxbridge/sdg/fail"
	"github.com/spdxbridge/sdg/pathlib"
)

const newline = '\n'

var catalogLock sync.Mutex

// Entry is one catalog line describing a stored document.
type Entry struct {
	Digest string `json:"digest"`
	Name   string `json:"name"`
	Format string `json:"format"`
	Size   int64  `json:"size"`
	When   int64  `json:"when"`
}

func (it *Entry) Age() time.Duration {
	return time.Since(time.Unix(it.When, 0))
}

func catalogFile() string {
	return filepath.Join(common.Product.LibraryLocation(), "catalog.ndjson")
}

// Location shards by the first two byte pairs of the digest, so single
// directories stay small even when the library grows.
func Location(digest string) string {
	return filepath.Join(common.Product.LibraryLocation(), digest[:2], digest[2:4])
}

func ExactLocation(digest string) string {
	return filepath.Join(Location(digest), digest)
}

func Has(digest string) bool {
	return pathlib.IsFile(ExactLocation(digest))
}

// Store saves a produced document into the library, content addressed by
// its SHA256 digest. Storing identical content again refreshes the catalog
// entry without writing a second copy.
func Store(document, format string) (entry *Entry, err error) {
	defer fail.Around(&err)

	blob, err := os.ReadFile(document)
	fail.On(err != nil, "Failed to read %q, reason: %v", document, err)

	digest := fmt.Sprintf("%02x", sha256.Sum256(blob))
	entry = &Entry{
		Digest: digest,
		Name:   filepath.Base(document),
		Format: format,
		Size:   int64(len(blob)),
		When:   time.Now().Unix(),
	}

	target := ExactLocation(digest)
	if pathlib.IsFile(target) {
		common.Debug("Document %s already stored, catalog entry refreshed.", digest[:8])
	} else {
		err = pathlib.EnsureDirectoryExists(Location(digest))
		fail.Fast(err)
		// part file + rename, so readers never see half written content
		partfile := target + ".part"
		err = pathlib.WriteFile(partfile, blob, 0o640)
		fail.Fast(err)
		err = os.Rename(partfile, target)
		fail.Fast(err)
		common.Timeline("library stored %s (%d bytes)", digest[:8], entry.Size)
	}
	err = appendCatalog(entry)
	fail.Fast(err)
	return entry, nil
}

func appendCatalog(entry *Entry) (err error) {
	defer fail.Around(&err)

	blob, err := json.Marshal(entry)
	fail.Fast(err)
	blob = append(blob, newline)
	_, err = pathlib.EnsureDirectory(common.Product.LibraryLocation())
	fail.Fast(err)
	catalogLock.Lock()
	defer catalogLock.Unlock()
	return pathlib.AppendFile(catalogFile(), blob)
}

// Entries reads the catalog and collapses it to one entry per digest, the
// latest recording winning. Corrupt lines are skipped, a missing catalog is
// just an empty library.
func Entries() ([]*Entry, error) {
	blob, err := os.ReadFile(catalogFile())
	if os.IsNotExist(err) {
		return []*Entry{}, nil
	}
	if err != nil {
		return nil, err
	}
	seen := make(map[string]int)
	result := make([]*Entry, 0, 20)
	for _, line := range strings.Split(string(blob), "\n") {
		if len(strings.TrimSpace(line)) == 0 {
			continue
		}
		entry := &Entry{}
		if json.Unmarshal([]byte(line), entry) != nil {
			continue
		}
		if at, ok := seen[entry.Digest]; ok {
			result[at] = entry
			continue
		}
		seen[entry.Digest] = len(result)
		result = append(result, entry)
	}
	return result, nil
}
