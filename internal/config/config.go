// Package config manages pmctl's profile store: named API-key profiles
// with an optional label and default workspace, persisted as a
// human-editable YAML file under the user config directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNoConfig indicates the store is not set up yet: the config file is
// missing, or it exists but every profile has been removed.
var ErrNoConfig = errors.New("no profiles configured")

// Profile is a named credential bundle for one Postman account.
type Profile struct {
	Name      string `yaml:"-"`
	APIKey    string `yaml:"api_key"`
	Label     string `yaml:"label,omitempty"`
	Workspace string `yaml:"workspace,omitempty"`
}

// Config is the full profile store content. At most one profile is the
// default at any time.
type Config struct {
	DefaultProfile string             `yaml:"default_profile"`
	Profiles       map[string]Profile `yaml:"profiles"`
}

// Get returns the profile with the given name, or the default profile
// when name is empty.
func (c *Config) Get(name string) (Profile, error) {
	target := name
	if target == "" {
		target = c.DefaultProfile
	}
	p, ok := c.Profiles[target]
	if !ok {
		return Profile{}, fmt.Errorf("profile %q not found (available: %s)", target, strings.Join(c.Names(), ", "))
	}
	return p, nil
}

// Names returns all profile names, sorted.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Store persists the config to a single YAML file.
type Store struct {
	path string
}

// NewStore creates a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the standard config location,
// e.g. ~/.config/pmctl/config.yaml on Linux.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(dir, "pmctl", "config.yaml"), nil
}

// Path returns the file path this store reads and writes.
func (s *Store) Path() string {
	return s.path
}

// Load reads and parses the config file. A missing file or an empty
// profile map yields ErrNoConfig so callers can tell "not set up yet"
// from a broken file.
func (s *Store) Load() (*Config, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s does not exist (run \"pmctl profile add\" to create it)", ErrNoConfig, s.path)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.path, err)
	}
	if len(cfg.Profiles) == 0 {
		return nil, fmt.Errorf("%w: %s has no profiles (run \"pmctl profile add\" to add one)", ErrNoConfig, s.path)
	}

	for name, p := range cfg.Profiles {
		p.Name = name
		cfg.Profiles[name] = p
	}
	if _, ok := cfg.Profiles[cfg.DefaultProfile]; !ok {
		cfg.DefaultProfile = firstName(&cfg)
	}
	return &cfg, nil
}

// Save writes the config. The file is created 0600 since it holds API keys.
func (s *Store) Save(cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	content, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(s.path, content, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Add upserts a profile. The first profile ever added becomes the default,
// as does any profile added with makeDefault.
func (s *Store) Add(name, apiKey, label string, makeDefault bool) (*Config, error) {
	cfg, err := s.Load()
	if err != nil {
		if !errors.Is(err, ErrNoConfig) {
			return nil, err
		}
		cfg = &Config{Profiles: map[string]Profile{}}
	}

	cfg.Profiles[name] = Profile{Name: name, APIKey: apiKey, Label: label}
	if makeDefault || len(cfg.Profiles) == 1 {
		cfg.DefaultProfile = name
	}

	if err := s.Save(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Remove deletes a profile. Removing the default promotes the first
// remaining profile (by name) to default.
func (s *Store) Remove(name string) (*Config, error) {
	cfg, err := s.Load()
	if err != nil {
		return nil, err
	}
	if _, ok := cfg.Profiles[name]; !ok {
		return nil, fmt.Errorf("profile %q not found", name)
	}

	delete(cfg.Profiles, name)
	if cfg.DefaultProfile == name {
		cfg.DefaultProfile = firstName(cfg)
	}

	if err := s.Save(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetDefault marks an existing profile as the default.
func (s *Store) SetDefault(name string) (*Config, error) {
	cfg, err := s.Load()
	if err != nil {
		return nil, err
	}
	if _, ok := cfg.Profiles[name]; !ok {
		return nil, fmt.Errorf("profile %q not found (available: %s)", name, strings.Join(cfg.Names(), ", "))
	}

	cfg.DefaultProfile = name
	if err := s.Save(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetWorkspace stores a default workspace ID on a profile. An empty
// profile name targets the current default profile; the effective profile
// name is returned.
func (s *Store) SetWorkspace(profile, workspaceID string) (string, error) {
	cfg, err := s.Load()
	if err != nil {
		return "", err
	}
	p, err := cfg.Get(profile)
	if err != nil {
		return "", err
	}

	p.Workspace = workspaceID
	cfg.Profiles[p.Name] = p

	if err := s.Save(cfg); err != nil {
		return "", err
	}
	return p.Name, nil
}

func firstName(cfg *Config) string {
	names := cfg.Names()
	if len(names) == 0 {
		return ""
	}
	return names[0]
}
