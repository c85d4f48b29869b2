// Package config handles the pv configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "pv"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"
	// DataDir is the directory name under XDG_DATA_HOME.
	DataDir = "pv"
	// LibraryFile is the default SQLite library file name.
	LibraryFile = "papers.db"

	DefaultAPIBaseURL = "http://localhost:8000/api"
	DefaultAPITimeout = 30 * time.Second
	DefaultServeAddr  = "127.0.0.1:8080"
	DefaultNeo4jURI   = "bolt://localhost:7687"
	DefaultNeo4jUser  = "neo4j"
	DefaultNeo4jDB    = "neo4j"
)

// Environment variables that override file values.
const (
	EnvAPIBaseURL    = "PV_API_BASE_URL"
	EnvAPIToken      = "PV_API_TOKEN"
	EnvLibraryPath   = "PV_LIBRARY_PATH"
	EnvNeo4jURI      = "NEO4J_URI"
	EnvNeo4jUser     = "NEO4J_USER"
	EnvNeo4jPassword = "NEO4J_PASSWORD"
)

// Config is the configuration stored in ~/.config/pv/config.yml.
type Config struct {
	Language    string        `yaml:"language,omitempty"` // Persisted UI language preference
	APIBaseURL  string        `yaml:"api_base_url,omitempty"`
	APIToken    string        `yaml:"api_token,omitempty"`
	APITimeout  time.Duration `yaml:"api_timeout,omitempty"`
	LibraryPath string        `yaml:"library_path,omitempty"`
	ServeAddr   string        `yaml:"serve_addr,omitempty"`

	Neo4jURI      string `yaml:"neo4j_uri,omitempty"`
	Neo4jUser     string `yaml:"neo4j_user,omitempty"`
	Neo4jPassword string `yaml:"neo4j_password,omitempty"`
	Neo4jDatabase string `yaml:"neo4j_database,omitempty"`

	path   string  // file this config was loaded from and saves to
	stored *Config // values as read from the file, before env and defaults
}

// DefaultPath returns the config file path.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/pv/config.yml.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// DefaultLibraryPath returns the SQLite library path.
// Respects XDG_DATA_HOME, defaults to ~/.local/share/pv/papers.db.
func DefaultLibraryPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return LibraryFile
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, DataDir, LibraryFile)
}

// Load reads the config at path, applies environment overrides and fills
// defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{path: path}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config: %w", err)
			}
		}
	}

	stored := *cfg
	stored.stored = nil
	cfg.stored = &stored

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	overrides := map[string]*string{
		EnvAPIBaseURL:    &c.APIBaseURL,
		EnvAPIToken:      &c.APIToken,
		EnvLibraryPath:   &c.LibraryPath,
		EnvNeo4jURI:      &c.Neo4jURI,
		EnvNeo4jUser:     &c.Neo4jUser,
		EnvNeo4jPassword: &c.Neo4jPassword,
	}
	for env, field := range overrides {
		if v := os.Getenv(env); v != "" {
			*field = v
		}
	}
}

func (c *Config) applyDefaults() {
	if c.APIBaseURL == "" {
		c.APIBaseURL = DefaultAPIBaseURL
	}
	if c.APITimeout == 0 {
		c.APITimeout = DefaultAPITimeout
	}
	if c.LibraryPath == "" {
		c.LibraryPath = DefaultLibraryPath()
	}
	c.LibraryPath = ExpandPath(c.LibraryPath)
	if c.ServeAddr == "" {
		c.ServeAddr = DefaultServeAddr
	}
	if c.Neo4jURI == "" {
		c.Neo4jURI = DefaultNeo4jURI
	}
	if c.Neo4jUser == "" {
		c.Neo4jUser = DefaultNeo4jUser
	}
	if c.Neo4jDatabase == "" {
		c.Neo4jDatabase = DefaultNeo4jDB
	}
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	if c.APITimeout < 0 {
		return fmt.Errorf("invalid api_timeout %s: must be positive", c.APITimeout)
	}
	return nil
}

// Path returns the file this config saves to.
func (c *Config) Path() string {
	return c.path
}

// Save writes the file-backed values back to the config file, creating the
// directory if needed. Environment overrides and defaults are not written.
func (c *Config) Save() error {
	if c.path == "" {
		return errors.New("config has no file path")
	}

	out := c
	if c.stored != nil {
		out = c.stored
	}
	data, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// LoadLanguage returns the stored language preference.
func (c *Config) LoadLanguage() string {
	return c.Language
}

// SaveLanguage stores the language preference and saves the file.
func (c *Config) SaveLanguage(lang string) error {
	c.Language = lang
	if c.stored != nil {
		c.stored.Language = lang
	}
	return c.Save()
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[1:])
}
