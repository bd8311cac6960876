package config

import (
	"log"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	prefix      = "tmviewer"
	tableFormat = `tmviewer is configured via the environment. The following environment
variables can be used:

KEY	DEFAULT	REQUIRED	DESCRIPTION
{{range .}}{{usage_key .}}	{{usage_default .}}	{{usage_required .}}	{{usage_description .}}
{{end}}`
)

var (
	// Version of this build, set by main
	Version = ""

	// BuildDate for this build, set by main
	BuildDate = ""
)

// Root wraps all other configurations.
type Root struct {
	LogLevel string `required:"true" default:"info" desc:"debug, info, warn, or error"`
	API      API
	Web      Web
	Settings Settings
	Lua      Lua
}

// API contains the mail retrieval endpoint configuration.
type API struct {
	BaseURL      string        `required:"true" default:"https://api.testmail.app/api/json" desc:"Retrieval endpoint URL"`
	Timeout      time.Duration `required:"true" default:"30s" desc:"Fetch request timeout"`
	Limit        int           `default:"0" desc:"Emails per page, 0 uses the API default"`
	PollInterval time.Duration `default:"0s" desc:"Background refresh interval, 0 disables"`
}

// Web contains the HTTP server configuration.
type Web struct {
	Addr           string `required:"true" default:"127.0.0.1:9080" desc:"Web server IP4 host:port"`
	BasePath       string `default:"" desc:"Base path prefix for UI and API URLs"`
	MonitorHistory int    `required:"true" default:"10" desc:"Fetch events replayed to new monitors"`
	PProf          bool   `required:"true" default:"false" desc:"Expose profiling tools"`
}

// Settings contains the persisted user preference configuration.
type Settings struct {
	Path string `desc:"Settings file path, defaults to the user config dir"`
}

// Lua contains the Lua extension host configuration.
type Lua struct {
	Path string `required:"false" default:"tmviewer.lua" desc:"Lua script path"`
}

// SettingsPath returns the configured settings file, or the default location inside the user
// config directory.
func (s Settings) SettingsPath() string {
	if s.Path != "" {
		return s.Path
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "tmviewer.json"
	}
	return filepath.Join(dir, "tmviewer", "settings.json")
}

// Process loads and parses configuration from the environment.
func Process() (*Root, error) {
	c := &Root{}
	err := envconfig.Process(prefix, c)
	return c, err
}

// Usage prints out the envconfig usage to Stderr.
func Usage() {
	tabs := tabwriter.NewWriter(os.Stderr, 1, 0, 4, ' ', 0)
	if err := envconfig.Usagef(prefix, &Root{}, tabs, tableFormat); err != nil {
		log.Fatalf("Unable to parse env config: %v", err)
	}
	tabs.Flush()
}
