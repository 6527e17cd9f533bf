package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables that override file values.
const (
	EnvCMSURL   = "DEALIT_CMS_URL"
	EnvAPIToken = "DEALIT_API_TOKEN"
)

const (
	PanelAuto = "auto"
	PanelShow = "show"
	PanelHide = "hide"
)

const (
	defaultTimeout      = 10 * time.Second
	defaultPageSize     = 100
	defaultSearchLimit  = 5
	defaultTopOffset    = 3
	defaultBottomOffset = 2
	maxPageSize         = 1000
)

// Sticky holds the rows covered by fixed chrome above and below the page.
type Sticky struct {
	TopOffset    int `yaml:"top_offset"`
	BottomOffset int `yaml:"bottom_offset"`
}

type Config struct {
	CMSURL      string        `yaml:"cms_url"`
	APIToken    string        `yaml:"api_token,omitempty"`
	FixturesDir string        `yaml:"fixtures_dir,omitempty"`
	Timeout     time.Duration `yaml:"timeout"`
	PageSize    int           `yaml:"page_size"`
	Panel       string        `yaml:"panel"` // "auto" (default), "show", "hide"
	Sticky      Sticky        `yaml:"sticky"`
	SearchLimit int           `yaml:"search_limit"`
}

func Default() Config {
	return Config{
		Timeout:     defaultTimeout,
		PageSize:    defaultPageSize,
		Panel:       PanelAuto,
		SearchLimit: defaultSearchLimit,
		Sticky: Sticky{
			TopOffset:    defaultTopOffset,
			BottomOffset: defaultBottomOffset,
		},
	}
}

func (c *Config) Normalize() {
	c.CMSURL = strings.TrimRight(strings.TrimSpace(c.CMSURL), "/")
	c.APIToken = strings.TrimSpace(c.APIToken)

	c.FixturesDir = strings.TrimSpace(c.FixturesDir)
	if c.FixturesDir != "" {
		c.FixturesDir = expandPath(c.FixturesDir)
	}

	c.Panel = strings.TrimSpace(strings.ToLower(c.Panel))
	if c.Panel == "" {
		c.Panel = PanelAuto
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.PageSize <= 0 {
		c.PageSize = defaultPageSize
	}
	if c.SearchLimit <= 0 {
		c.SearchLimit = defaultSearchLimit
	}
}

// ApplyEnv overlays environment overrides onto c.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := strings.TrimSpace(getenv(EnvCMSURL)); v != "" {
		c.CMSURL = strings.TrimRight(v, "/")
	}
	if v := strings.TrimSpace(getenv(EnvAPIToken)); v != "" {
		c.APIToken = v
	}
}

func (c Config) Validate() error {
	switch c.Panel {
	case "", PanelAuto, PanelShow, PanelHide:
	default:
		return fmt.Errorf("invalid panel %q (valid: auto, show, hide)", c.Panel)
	}
	if c.CMSURL != "" {
		u, err := url.Parse(c.CMSURL)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("invalid cms_url %q (want http(s)://host)", c.CMSURL)
		}
	}
	if c.PageSize > maxPageSize {
		return fmt.Errorf("page_size %d exceeds %d", c.PageSize, maxPageSize)
	}
	if c.Sticky.TopOffset < 0 || c.Sticky.BottomOffset < 0 {
		return fmt.Errorf("sticky offsets must not be negative (top %d, bottom %d)",
			c.Sticky.TopOffset, c.Sticky.BottomOffset)
	}
	return nil
}

// Offline reports whether catalogs come from the fixtures directory.
func (c Config) Offline() bool {
	return c.FixturesDir != ""
}

func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "dealit", "config.yaml")
}

func Load() (Config, error) {
	return LoadFrom(DefaultPath())
}

// LoadFrom returns Default() (plus env overrides) if path doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return cfg, fmt.Errorf("reading config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}

	cfg.ApplyEnv(os.Getenv)
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Save writes c to path, creating parent directories. The file may hold a
// token, so it is written owner-only.
func (c Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
