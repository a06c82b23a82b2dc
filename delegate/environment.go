package delegate

import (
	"os"
	"strings"

	"github.com/spdxbridge/sdg/set"
	"github.com/spdxbridge/sdg/settings"
)

// Variables that leak the parent process's python setup into the child and
// make delegate behavior depend on whatever happens to be installed around
// it. Dropped unless settings explicitly pass them through.
var pythonNoise = []string{
	"PYTHONPATH",
	"PYTHONHOME",
	"PYTHONSTARTUP",
	"PYTHONEXECUTABLE",
}

// Environment builds the child environment for the delegate generator:
// the inherited environment minus python noise, plus unbuffered output so
// stderr arrives line by line, plus network settings from settings.yaml.
//
// Passthrough entries from settings come in two spellings: a bare name
// keeps the parent's value even for noise variables, and a NAME=value pair
// is appended verbatim.
func Environment() []string {
	keep, pairs := passthroughEntries()
	env := make([]string, 0, len(os.Environ())+len(pairs)+4)
	for _, pair := range os.Environ() {
		name, _, _ := strings.Cut(pair, "=")
		if set.Member(pythonNoise, name) && !set.Member(keep, name) {
			continue
		}
		env = append(env, pair)
	}
	env = append(env, pairs...)
	env = append(env, "PYTHONUNBUFFERED=1")
	return injectNetworkEnvironment(env)
}

func passthroughEntries() (names, pairs []string) {
	for _, entry := range settings.Global.PassthroughEnvironment() {
		entry = strings.TrimSpace(entry)
		if len(entry) == 0 {
			continue
		}
		if strings.Contains(entry, "=") {
			pairs = append(pairs, entry)
		} else {
			names = append(names, entry)
		}
	}
	return names, pairs
}

func injectNetworkEnvironment(environment []string) []string {
	environment = appendIfValue(environment, "HTTPS_PROXY", settings.Global.HttpsProxy())
	environment = appendIfValue(environment, "HTTP_PROXY", settings.Global.HttpProxy())
	environment = appendIfValue(environment, "NO_PROXY", settings.Global.NoProxy())
	return environment
}

func appendIfValue(environment []string, key, value string) []string {
	if len(value) > 0 {
		return append(environment, key+"="+value)
	}
	return environment
}
