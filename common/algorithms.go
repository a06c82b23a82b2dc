package common

import (
	"fmt"
	"runtime"
	"time"

	"github.com/dchest/siphash"
)

func Siphash(left, right uint64, body []byte) uint64 {
	return siphash.Hash(left, right, body)
}

// Textual renders a 64 bit key as hex text, optionally truncated to size runes.
func Textual(key uint64, size int) string {
	text := fmt.Sprintf("%016x", key)
	if size > 0 && size < len(text) {
		return text[:size]
	}
	return text
}

func DayCountSince(mark time.Time) int {
	elapsed := time.Since(mark)
	if elapsed < 0 {
		return 0
	}
	return int(elapsed / (24 * time.Hour))
}

// OptimalWorkerCount is the default parallelism for batch work. Each unit
// of work spawns one external process, so CPU count is the natural bound.
func OptimalWorkerCount() int {
	count := runtime.NumCPU()
	if count < 1 {
		return 1
	}
	return count
}
