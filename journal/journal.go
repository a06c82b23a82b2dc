package journal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/spdxbridge/sdg/common"
	"github.com/spdxbridge/sdg/fail"
	"github.com/spdxbridge/sdg/pathlib"
)

const newline = '\n'

var (
	spacePattern = regexp.MustCompile(`\s+`)
	writeLock    sync.Mutex
)

// Event is one NDJSON line in the run journal. Run is the same random
// identifier for every event posted by one process, so batch entries
// stay correlatable after the fact.
type Event struct {
	When       int64  `json:"when"`
	Run        string `json:"run"`
	Controller string `json:"controller"`
	Event      string `json:"event"`
	Detail     string `json:"detail"`
	Comment    string `json:"comment,omitempty"`
}

func journalfile() string {
	return filepath.Join(common.Product.JournalLocation(), "run.ndjson")
}

// Unify collapses whitespace runs into single spaces, so that multiline
// detail text always stays one journal line.
func Unify(value string) string {
	return strings.TrimSpace(spacePattern.ReplaceAllString(value, " "))
}

// Post appends one event to the run journal. Journal writing is best
// effort: callers log a failure at debug level at most and never let it
// change the result of the operation being journaled.
func Post(event, detail, commentForm string, fields ...interface{}) (err error) {
	defer fail.Around(&err)

	_, err = pathlib.EnsureDirectory(common.Product.JournalLocation())
	fail.Fast(err)

	message := Event{
		When:       time.Now().Unix(),
		Run:        common.RandomIdentifier(),
		Controller: common.ControllerIdentity(),
		Event:      Unify(event),
		Detail:     Unify(detail),
		Comment:    Unify(fmt.Sprintf(commentForm, fields...)),
	}
	blob, err := json.Marshal(message)
	fail.On(err != nil, "Could not marshal %v, reason: %v", message, err)
	blob = append(blob, newline)

	writeLock.Lock()
	defer writeLock.Unlock()
	fail.Fast(pathlib.AppendFile(journalfile(), blob))
	return nil
}

// Events reads the whole journal, oldest first. A missing journal is an
// empty history and a corrupt line is skipped, never fatal.
func Events() ([]Event, error) {
	content, err := os.ReadFile(journalfile())
	if os.IsNotExist(err) {
		return []Event{}, nil
	}
	if err != nil {
		return nil, err
	}
	result := make([]Event, 0, 100)
	for _, line := range strings.Split(string(content), "\n") {
		flat := strings.TrimSpace(line)
		if len(flat) == 0 {
			continue
		}
		event := Event{}
		if json.Unmarshal([]byte(flat), &event) != nil {
			continue
		}
		result = append(result, event)
	}
	return result, nil
}

// Recent returns at most count latest events, still oldest first.
func Recent(count int) ([]Event, error) {
	events, err := Events()
	if err != nil {
		return nil, err
	}
	if count > 0 && len(events) > count {
		events = events[len(events)-count:]
	}
	return events, nil
}
