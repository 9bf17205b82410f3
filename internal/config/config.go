package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	DefaultBackendURL          = "http://localhost:8000/generateReport"
	DefaultModel               = "o4-mini-2025-04-16"
	DefaultMaxCompletionTokens = 32000
	DefaultServerAddr          = "0.0.0.0:8000"
	DefaultGraphDir            = "graph_data_example"
)

// Profile holds OpenAI credentials used by the report backend.
type Profile struct {
	APIKey  string `json:"api_key" toml:"api_key"`
	BaseURL string `json:"base_url,omitempty" toml:"base_url,omitempty"`
	Model   string `json:"model" toml:"model"`
}

// Application is a selectable target. ID is carried for the backend catalog
// but is not part of the report request.
type Application struct {
	Name string `json:"name" toml:"name"`
	ID   string `json:"id" toml:"id"`
}

type ServerConfig struct {
	Addr                string   `json:"addr" toml:"addr"`
	AllowedOrigins      []string `json:"allowed_origins" toml:"allowed_origins"`
	GraphDir            string   `json:"graph_dir" toml:"graph_dir"`
	MaxCompletionTokens int      `json:"max_completion_tokens" toml:"max_completion_tokens"`
	RequestsPerMinute   int      `json:"requests_per_minute" toml:"requests_per_minute"`
}

type Config struct {
	Profiles           map[string]Profile `json:"profiles" toml:"profiles"`
	ActiveProfile      string             `json:"active_profile" toml:"active_profile"`
	BackendURL         string             `json:"backend_url" toml:"backend_url"`
	RequestTimeoutSecs int                `json:"request_timeout_secs" toml:"request_timeout_secs"`
	Applications       []Application      `json:"applications" toml:"applications"`
	Server             ServerConfig       `json:"server" toml:"server"`
	currentProfile     *Profile
	path               string
}

func LoadConfig() (*Config, error) {
	configDir, err := getConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	config, err := loadConfigFile(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	config.applyDefaults()

	if err := config.setCurrentProfile(); err != nil {
		return nil, fmt.Errorf("failed to set current profile: %w", err)
	}

	return config, nil
}

// Default returns the built-in configuration without touching the filesystem.
func Default() *Config {
	c := &Config{
		Profiles: map[string]Profile{
			"default": {Model: DefaultModel},
		},
		ActiveProfile: "default",
	}
	c.applyDefaults()
	_ = c.setCurrentProfile()
	return c
}

func defaultApplications() []Application {
	return []Application{
		{Name: "Wikimedia Commons", ID: "135"},
		{Name: "place_holder", ID: "0"},
		{Name: "place_holder", ID: "0"},
		{Name: "place_holder", ID: "0"},
		{Name: "place_holder", ID: "0"},
	}
}

func (c *Config) applyDefaults() {
	if c.BackendURL == "" {
		c.BackendURL = DefaultBackendURL
	}
	if len(c.Applications) == 0 {
		c.Applications = defaultApplications()
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultServerAddr
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"http://localhost:5173"}
	}
	if c.Server.GraphDir == "" {
		c.Server.GraphDir = DefaultGraphDir
	}
	if c.Server.MaxCompletionTokens <= 0 {
		c.Server.MaxCompletionTokens = DefaultMaxCompletionTokens
	}
	if c.Server.RequestsPerMinute < 0 {
		c.Server.RequestsPerMinute = 0
	}
	if c.RequestTimeoutSecs < 0 {
		c.RequestTimeoutSecs = 0
	}
}

func (c *Config) IsValid() bool {
	return c.currentProfile != nil && c.currentProfile.APIKey != ""
}

func (c *Config) GetAPIKey() string {
	if c.currentProfile == nil {
		return ""
	}
	return c.currentProfile.APIKey
}

func (c *Config) GetModel() string {
	if c.currentProfile == nil || c.currentProfile.Model == "" {
		return DefaultModel
	}
	return c.currentProfile.Model
}

func (c *Config) GetBaseURL() string {
	if c.currentProfile == nil {
		return ""
	}
	return c.currentProfile.BaseURL
}

// ApplicationNames lists the selector entries in configured order.
func (c *Config) ApplicationNames() []string {
	names := make([]string, 0, len(c.Applications))
	for _, app := range c.Applications {
		names = append(names, app.Name)
	}
	return names
}

// ApplicationID looks up the catalog identifier of an application name.
func (c *Config) ApplicationID(name string) (string, bool) {
	for _, app := range c.Applications {
		if app.Name == name {
			return app.ID, true
		}
	}
	return "", false
}

// RequestTimeout is zero when report requests may wait forever.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSecs) * time.Second
}

// Dir returns the directory holding the config file and the debug log.
func Dir() (string, error) {
	return getConfigDir()
}

func getConfigDir() (string, error) {
	var baseDir string

	// Use RORIBUG_HOME if set, otherwise use user's home directory
	if home := os.Getenv("RORIBUG_HOME"); home != "" {
		baseDir = home
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		baseDir = homeDir
	}

	return filepath.Join(baseDir, ".roribug"), nil
}

func loadConfigFile(configDir string) (*Config, error) {
	tomlPath := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(tomlPath); err == nil {
		var config Config
		if _, err := toml.DecodeFile(tomlPath, &config); err != nil {
			return nil, err
		}
		config.path = tomlPath
		return &config, nil
	}

	jsonPath := filepath.Join(configDir, "config.json")
	if _, err := os.Stat(jsonPath); os.IsNotExist(err) {
		return createDefaultConfig(jsonPath)
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}
	config.path = jsonPath

	return &config, nil
}

func createDefaultConfig(configPath string) (*Config, error) {
	config := Default()
	config.path = configPath

	if err := config.Save(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Save() error {
	if c.path == "" {
		configDir, err := getConfigDir()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
		c.path = filepath.Join(configDir, "config.json")
	}

	if filepath.Ext(c.path) == ".toml" {
		f, err := os.OpenFile(c.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return err
		}
		defer f.Close()
		return toml.NewEncoder(f).Encode(c)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(c.path, data, 0600)
}

func (c *Config) setCurrentProfile() error {
	if c.Profiles == nil {
		return fmt.Errorf("no profiles defined")
	}

	profile, exists := c.Profiles[c.ActiveProfile]
	if !exists {
		// If active profile doesn't exist, try to use the first available profile
		for name, p := range c.Profiles {
			c.ActiveProfile = name
			profile = p
			exists = true
			break
		}
	}

	if !exists {
		return fmt.Errorf("no valid profiles found")
	}

	c.currentProfile = &profile
	return nil
}

// OverrideProfile replaces the active profile's credentials for this process
// only. Empty values keep the stored ones.
func (c *Config) OverrideProfile(apiKey, model string) {
	if c.currentProfile == nil {
		c.currentProfile = &Profile{}
	}
	p := *c.currentProfile
	if apiKey != "" {
		p.APIKey = apiKey
	}
	if model != "" {
		p.Model = model
	}
	c.currentProfile = &p
}
