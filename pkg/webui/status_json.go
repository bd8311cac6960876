package webui

type jsonServerConfig struct {
	Version      string       `json:"version"`
	BuildDate    string       `json:"build-date"`
	WebListener  string       `json:"web-listener"`
	BasePath     string       `json:"base-path"`
	APIBaseURL   string       `json:"api-base-url"`
	Timeout      string       `json:"timeout"`
	PollInterval string       `json:"poll-interval"`
	SettingsFile string       `json:"settings-file"`
	Fetching     bool         `json:"fetching"`
	Settings     jsonSettings `json:"settings"`
}

// jsonSettings never exposes the API key itself.
type jsonSettings struct {
	HasAPIKey bool   `json:"has-api-key"`
	Namespace string `json:"namespace"`
	Tag       string `json:"tag"`
	Lang      string `json:"lang"`
	Theme     string `json:"theme"`
}
