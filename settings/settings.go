package settings

import (
	"net/http"
	"net/url"
	"os"
	"sync"

	"github.com/spdxbridge/sdg/common"
	"github.com/spdxbridge/sdg/pathlib"
	"gopkg.in/yaml.v2"
)

// Settings is the file-backed configuration of this tool, one YAML file
// under the product home. Every field has a built-in default, so a missing
// or partial file is never an error.
type Settings struct {
	Meta        *Meta        `yaml:"meta" json:"meta"`
	Generator   *Generator   `yaml:"generator" json:"generator"`
	Downloads   *Downloads   `yaml:"downloads" json:"downloads"`
	Profile     *Profile     `yaml:"profile" json:"profile"`
	Proxies     *Proxies     `yaml:"proxies,omitempty" json:"proxies,omitempty"`
	Environment *Environment `yaml:"environment,omitempty" json:"environment,omitempty"`
}

type Meta struct {
	Name    string `yaml:"name" json:"name"`
	Version string `yaml:"version" json:"version"`
}

// Generator describes how to reach the delegate generator. Command is a
// full command line (split with shell quoting rules before use), and
// VersionCommand is the argument asking the delegate for its version.
type Generator struct {
	Command        string `yaml:"command" json:"command"`
	VersionCommand string `yaml:"version-command" json:"version-command"`
	MinimumVersion string `yaml:"minimum-version" json:"minimum-version"`
}

// Downloads tells bootstrap where the delegate archive lives and what its
// content must hash to.
type Downloads struct {
	Generator string `yaml:"generator" json:"generator"`
	SHA256    string `yaml:"sha256" json:"sha256"`
}

type Profile struct {
	Format        string `yaml:"format" json:"format"`
	KeepInLibrary bool   `yaml:"keep-in-library" json:"keep-in-library"`
	Journal       bool   `yaml:"journal" json:"journal"`
}

type Proxies struct {
	HttpProxy  string `yaml:"http-proxy" json:"http-proxy"`
	HttpsProxy string `yaml:"https-proxy" json:"https-proxy"`
	NoProxy    string `yaml:"no-proxy" json:"no-proxy"`
}

// Environment carries KEY=VALUE pairs that are always forwarded into the
// delegate's child environment.
type Environment struct {
	Passthrough []string `yaml:"passthrough" json:"passthrough"`
}

func defaultSettings() *Settings {
	return &Settings{
		Meta: &Meta{
			Name:    "sdg",
			Version: common.Version,
		},
		Generator: &Generator{
			Command:        "",
			VersionCommand: "--version",
			MinimumVersion: "",
		},
		Downloads:   &Downloads{},
		Profile:     &Profile{Format: "tag-value", Journal: true},
		Proxies:     &Proxies{},
		Environment: &Environment{},
	}
}

// FromBytes parses YAML content into Settings, filling any missing
// sections from the defaults.
func FromBytes(content []byte) (*Settings, error) {
	result := new(Settings)
	err := yaml.Unmarshal(content, result)
	if err != nil {
		return nil, err
	}
	fallback := defaultSettings()
	if result.Meta == nil {
		result.Meta = fallback.Meta
	}
	if result.Generator == nil {
		result.Generator = fallback.Generator
	}
	if len(result.Generator.VersionCommand) == 0 {
		result.Generator.VersionCommand = fallback.Generator.VersionCommand
	}
	if result.Downloads == nil {
		result.Downloads = fallback.Downloads
	}
	if result.Profile == nil {
		result.Profile = fallback.Profile
	}
	if len(result.Profile.Format) == 0 {
		result.Profile.Format = fallback.Profile.Format
	}
	if result.Proxies == nil {
		result.Proxies = fallback.Proxies
	}
	if result.Environment == nil {
		result.Environment = fallback.Environment
	}
	return result, nil
}

func (it *Settings) AsYaml() ([]byte, error) {
	return yaml.Marshal(it)
}

var (
	settingsLock   sync.Mutex
	cachedSettings *Settings
	httpTransport  *http.Transport
)

// SummonSettings gives the effective settings: the product home file when
// it exists, built-in defaults otherwise. Loaded once per process; Reset
// drops the cache after configuration writes.
func SummonSettings() (*Settings, error) {
	settingsLock.Lock()
	defer settingsLock.Unlock()

	if cachedSettings != nil {
		return cachedSettings, nil
	}
	location := common.Product.SettingsFile()
	if !pathlib.IsFile(location) {
		cachedSettings = defaultSettings()
		return cachedSettings, nil
	}
	content, err := os.ReadFile(location)
	if err != nil {
		return nil, err
	}
	parsed, err := FromBytes(content)
	if err != nil {
		return nil, err
	}
	cachedSettings = parsed
	return cachedSettings, nil
}

// SaveSettings writes the given settings as the product home settings file
// and drops the caches, so the next summon sees the new content.
func SaveSettings(it *Settings) error {
	content, err := it.AsYaml()
	if err != nil {
		return err
	}
	_, err = pathlib.EnsureDirectory(common.Product.Home())
	if err != nil {
		return err
	}
	err = pathlib.WriteFile(common.Product.SettingsFile(), content, 0o640)
	if err != nil {
		return err
	}
	Reset()
	return nil
}

func Reset() {
	settingsLock.Lock()
	defer settingsLock.Unlock()
	cachedSettings = nil
	httpTransport = nil
}

type gateway bool

// Global is the read side of the settings for the rest of the codebase.
// It never fails: when settings cannot be summoned, defaults answer.
var Global gateway

func (it gateway) summoned() *Settings {
	result, err := SummonSettings()
	if err != nil {
		common.Debug("Settings are not available (%v), using built-in defaults.", err)
		return defaultSettings()
	}
	return result
}

func (it gateway) Name() string {
	return it.summoned().Meta.Name
}

func (it gateway) GeneratorCommand() string {
	return it.summoned().Generator.Command
}

func (it gateway) GeneratorVersionCommand() string {
	return it.summoned().Generator.VersionCommand
}

func (it gateway) GeneratorMinimumVersion() string {
	return it.summoned().Generator.MinimumVersion
}

func (it gateway) DownloadURL() string {
	return it.summoned().Downloads.Generator
}

func (it gateway) DownloadDigest() string {
	return it.summoned().Downloads.SHA256
}

func (it gateway) DefaultFormat() string {
	return it.summoned().Profile.Format
}

func (it gateway) KeepInLibrary() bool {
	return it.summoned().Profile.KeepInLibrary
}

func (it gateway) JournalEnabled() bool {
	return it.summoned().Profile.Journal
}

func (it gateway) PassthroughEnvironment() []string {
	return it.summoned().Environment.Passthrough
}

func (it gateway) HttpProxy() string {
	return it.summoned().Proxies.HttpProxy
}

func (it gateway) HttpsProxy() string {
	return it.summoned().Proxies.HttpsProxy
}

func (it gateway) NoProxy() string {
	return it.summoned().Proxies.NoProxy
}

// ConfiguredHttpTransport is the shared transport for all outbound HTTP,
// carrying the configured proxy when there is one.
func (it gateway) ConfiguredHttpTransport() *http.Transport {
	source := it.summoned()

	settingsLock.Lock()
	defer settingsLock.Unlock()

	if httpTransport != nil {
		return httpTransport
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	proxy := source.Proxies.HttpsProxy
	if len(proxy) == 0 {
		proxy = source.Proxies.HttpProxy
	}
	if len(proxy) > 0 {
		link, err := url.Parse(proxy)
		if err != nil {
			common.Log("WARNING: proxy %q is not a valid URL (%v), ignoring it.", proxy, err)
		} else {
			transport.Proxy = http.ProxyURL(link)
		}
	}
	httpTransport = transport
	return httpTransport
}
