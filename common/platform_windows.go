package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	defaultLegacyLocation = "$HOME/.spdxbridge"
	defaultSdgLocation    = "$HOME/.sdg"
)

func ExpandPath(entry string) string {
	intermediate := os.ExpandEnv(entry)
	result, err := filepath.Abs(intermediate)
	if err != nil {
		return intermediate
	}
	return result
}

func GenerateKillCommand(keys []int) string {
	command := []string{"taskkill /f"}
	for _, key := range keys {
		command = append(command, fmt.Sprintf("/pid %d", key))
	}
	return strings.Join(command, " ")
}

func PlatformSyncDelay() {
	time.Sleep(300 * time.Millisecond)
}
