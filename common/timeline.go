package common

import (
	"fmt"
	"sync"
	"time"
)

type Duration time.Duration

func (it Duration) Seconds() float64 {
	return time.Duration(it).Seconds()
}

func (it Duration) String() string {
	return fmt.Sprintf("%5.3fs", it.Seconds())
}

type stopwatch struct {
	message string
	started time.Time
}

func Stopwatch(form string, details ...interface{}) *stopwatch {
	return &stopwatch{fmt.Sprintf(form, details...), time.Now()}
}

func (it *stopwatch) When() int64 {
	return it.started.Unix()
}

func (it *stopwatch) Elapsed() Duration {
	return Duration(time.Since(it.started))
}

func (it *stopwatch) Debug() Duration {
	elapsed := it.Elapsed()
	Debug("%s %s", it.message, elapsed)
	return elapsed
}

func (it *stopwatch) Log() Duration {
	elapsed := it.Elapsed()
	Log("%s %s", it.message, elapsed)
	return elapsed
}

func (it *stopwatch) Report() Duration {
	return it.Log()
}

type timeEvent struct {
	when Duration
	what string
}

var (
	timelineLock    sync.Mutex
	timelineEvents  []timeEvent
	TimelineEnabled bool
)

func Timeline(form string, details ...interface{}) {
	when := Clock.Elapsed()
	timelineLock.Lock()
	defer timelineLock.Unlock()
	timelineEvents = append(timelineEvents, timeEvent{when, fmt.Sprintf(form, details...)})
}

func TimelineBegin(form string, details ...interface{}) {
	Timeline("--- "+form, details...)
}

func TimelineEnd() {
	Timeline("---")
}

// EndOfTimeline prints the recorded timeline as a percentage table.
// It is a no-op unless the --timeline flag was given.
func EndOfTimeline() {
	TimelineEnd()
	if !TimelineEnabled || Silent() {
		return
	}
	timelineLock.Lock()
	defer timelineLock.Unlock()
	death := Clock.Elapsed().Seconds()
	if death == 0 {
		return
	}
	Log("----  sdg timeline  ----")
	for _, event := range timelineEvents {
		Log("%5.1f%%  %7s  %s", 100.0*event.when.Seconds()/death, event.when, event.what)
	}
	Log("----  %7s  ----", Clock.Elapsed())
}
