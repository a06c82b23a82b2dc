package common

import (
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"strings"
	"time"
)

const (
	SDG_VERBOSITY_VARIABLE = `SDG_VERBOSITY`
	DefaultControllerType  = `user`

	// ProgressMarks is the step count of the longest progress sequence,
	// which is the delegate bootstrap flow.
	ProgressMarks = 4
)

var (
	LogLinenumbers bool
	LogHides       []string
	ControllerType string

	silentFlag bool
	debugFlag  bool
	traceFlag  bool

	When         int64
	Clock        *stopwatch
	ProgressMark time.Time

	// Identities hands out short sequence labels for correlating debug
	// log entries, one per receive.
	Identities chan string

	randomIdentifier string
)

func init() {
	Clock = &stopwatch{"Clock", time.Now()}
	When = Clock.started.Unix()
	ProgressMark = time.Now()
	ControllerType = DefaultControllerType
	randomIdentifier = fmt.Sprintf("%016x", rand.Uint64()^uint64(os.Getpid()))
	Identities = make(chan string)
	go identityProvider()
	verbosityFromEnvironment()
}

func identityProvider() {
	for counter := 1; ; counter++ {
		Identities <- fmt.Sprintf("#%03d", counter)
	}
}

func verbosityFromEnvironment() {
	switch strings.ToLower(os.Getenv(SDG_VERBOSITY_VARIABLE)) {
	case "silent":
		silentFlag, debugFlag, traceFlag = true, false, false
	case "debug":
		silentFlag, debugFlag, traceFlag = false, true, false
	case "trace":
		silentFlag, debugFlag, traceFlag = false, true, true
	}
}

// DefineVerbosity resolves the three verbosity flags into final form.
// Trace implies debug, and silence loses to both. Without any flag set,
// whatever SDG_VERBOSITY established at startup stays in effect.
func DefineVerbosity(silent, debug, trace bool) {
	if !silent && !debug && !trace {
		return
	}
	silentFlag = silent && !debug && !trace
	debugFlag = debug || trace
	traceFlag = trace
}

func Silent() bool {
	return silentFlag
}

func DebugFlag() bool {
	return debugFlag
}

func TraceFlag() bool {
	return traceFlag
}

func RandomIdentifier() string {
	return randomIdentifier
}

func ControllerIdentity() string {
	return strings.ToLower(fmt.Sprintf("sdg.%s", ControllerType))
}

func UserAgent() string {
	return fmt.Sprintf("sdg/%s (%s) %s", Version, Platform(), ControllerIdentity())
}

func Platform() string {
	return strings.ToLower(fmt.Sprintf("%s_%s", runtime.GOOS, runtime.GOARCH))
}

func UserHomeIdentity() string {
	location, err := os.UserHomeDir()
	if err != nil {
		return "badcafe"
	}
	digest := Siphash(9007799254740993, 2147487647, []byte(location))
	return fmt.Sprintf("%07x", digest&0xFFFFFFF)
}
