package library

import (
	"archive/zip"
	"fmt"
	"os"
	"strings"

	"github.com/spdxbridge/sdg/common"
	"github.com/spdxbridge/sdg/fail"
)

// Export writes the selected entries into a zip archive under their
// original file names (digest prefixed when names collide inside one
// archive). No prefixes selects everything. Unknown or ambiguous prefixes
// are reported per prefix and never abort the rest of the export.
func Export(zipfile string, prefixes []string) (problems []string, err error) {
	defer fail.Around(&err)

	entries, err := Entries()
	fail.Fast(err)

	selected, problems := selectEntries(entries, prefixes)
	fail.On(len(selected) == 0, "Nothing to export into %q.", zipfile)

	sink, err := os.Create(zipfile)
	fail.On(err != nil, "Failed to create %q, reason: %v", zipfile, err)
	defer sink.Close()

	archive := zip.NewWriter(sink)
	defer archive.Close()

	taken := make(map[string]bool)
	for _, entry := range selected {
		name := entry.Name
		if taken[name] {
			name = fmt.Sprintf("%s-%s", entry.Digest[:8], entry.Name)
		}
		taken[name] = true
		err = addDocument(archive, entry, name)
		fail.Fast(err)
	}
	common.Timeline("library exported %d documents to %s", len(selected), zipfile)
	return problems, nil
}

func selectEntries(entries []*Entry, prefixes []string) ([]*Entry, []string) {
	if len(prefixes) == 0 {
		return entries, nil
	}
	selected := make([]*Entry, 0, len(prefixes))
	problems := make([]string, 0)
	chosen := make(map[string]bool)
	for _, prefix := range prefixes {
		matches := make([]*Entry, 0, 1)
		for _, entry := range entries {
			if strings.HasPrefix(entry.Digest, prefix) {
				matches = append(matches, entry)
			}
		}
		switch {
		case len(matches) == 0:
			problems = append(problems, fmt.Sprintf("no entry matches prefix %q", prefix))
		case len(matches) > 1:
			problems = append(problems, fmt.Sprintf("prefix %q is ambiguous, %d entries match", prefix, len(matches)))
		case chosen[matches[0].Digest]:
			// same document selected twice is not worth a complaint
		default:
			chosen[matches[0].Digest] = true
			selected = append(selected, matches[0])
		}
	}
	return selected, problems
}

func addDocument(archive *zip.Writer, entry *Entry, name string) (err error) {
	defer fail.Around(&err)

	blob, err := os.ReadFile(ExactLocation(entry.Digest))
	fail.On(err != nil, "Library blob for %s is unreadable, reason: %v", entry.Digest[:8], err)
	writer, err := archive.Create(name)
	fail.Fast(err)
	_, err = writer.Write(blob)
	fail.Fast(err)
	return nil
}
