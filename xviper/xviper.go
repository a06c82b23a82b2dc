package xviper

import (
	"sync"

	"github.com/spf13/viper"

	"github.com/spdxbridge/sdg/common"
	"github.com/spdxbridge/sdg/pathlib"
)

// The persisted key/value config of this tool. Unlike settings.yaml this
// file is only ever written by the tool itself (configure commands,
// identity bootstrap), never edited by hand.

var (
	xviperLock sync.Mutex
	registry   *configLayer
)

type configLayer struct {
	viper    *viper.Viper
	location string
}

func (it *configLayer) save() {
	err := it.viper.WriteConfigAs(it.location)
	if err != nil {
		common.Fatal("config save", err)
	}
}

func summoned() *configLayer {
	xviperLock.Lock()
	defer xviperLock.Unlock()

	if registry != nil {
		return registry
	}
	home := common.Product.Home()
	if err := pathlib.EnsureDirectoryExists(home); err != nil {
		common.Debug("Could not ensure %q, reason: %v", home, err)
	}
	handle := viper.New()
	location := common.Product.ConfigFile()
	handle.SetConfigFile(location)
	handle.SetConfigType("yaml")
	if err := handle.ReadInConfig(); err != nil {
		common.Trace("Persisted config %q not loaded, reason: %v", location, err)
	}
	registry = &configLayer{
		viper:    handle,
		location: location,
	}
	return registry
}

// Reset drops the loaded config, so the next access re-reads the file.
// Needed when the product home moves (tests) or after external edits.
func Reset() {
	xviperLock.Lock()
	defer xviperLock.Unlock()
	registry = nil
}

// Location tells which file backs the persisted config.
func Location() string {
	return summoned().location
}

// Set stores one key and writes the whole config through to disk. An empty
// string value is the idiom for "unset"; readers treat it as absent.
func Set(key string, value interface{}) {
	layer := summoned()
	xviperLock.Lock()
	defer xviperLock.Unlock()
	layer.viper.Set(key, value)
	layer.save()
}

func Get(key string) interface{} {
	layer := summoned()
	xviperLock.Lock()
	defer xviperLock.Unlock()
	return layer.viper.Get(key)
}

func GetString(key string) string {
	layer := summoned()
	xviperLock.Lock()
	defer xviperLock.Unlock()
	return layer.viper.GetString(key)
}

func GetBool(key string) bool {
	layer := summoned()
	xviperLock.Lock()
	defer xviperLock.Unlock()
	return layer.viper.GetBool(key)
}

func GetInt64(key string) int64 {
	layer := summoned()
	xviperLock.Lock()
	defer xviperLock.Unlock()
	return layer.viper.GetInt64(key)
}
