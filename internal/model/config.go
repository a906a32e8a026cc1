package model

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides (SPRINTBRANCH_TOKEN...).
const EnvPrefix = "SPRINTBRANCH"

// PromptConfig holds selector preferences.
type PromptConfig struct {
	// Category enables the category select and the confirmation step.
	Category bool `mapstructure:"category" yaml:"category"`
}

// BranchConfig holds branch naming preferences.
type BranchConfig struct {
	Style BranchStyle `mapstructure:"style" yaml:"style"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	// URL is the Jira base URL, e.g. https://example.atlassian.net/.
	URL string `mapstructure:"url" yaml:"url"`

	// User is the account name used for basic auth.
	User string `mapstructure:"user" yaml:"user"`

	// Token is the API token. When empty it is looked up in the keyring.
	Token string `mapstructure:"token" yaml:"token"`

	// Board is the agile board whose active sprint is used.
	Board int `mapstructure:"board" yaml:"board"`

	// Project, when set, is the key prefix every selected issue must carry.
	Project string `mapstructure:"project" yaml:"project"`

	Prompt PromptConfig `mapstructure:"prompt" yaml:"prompt"`
	Branch BranchConfig `mapstructure:"branch" yaml:"branch"`

	// Timeout bounds the whole run. Zero means no deadline.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`

	// DryRun stops before any branch is created.
	DryRun bool `mapstructure:"dry_run" yaml:"dry_run"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/sprintbranch/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "sprintbranch", "config.yaml")
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"board":   "board",
	"project": "project",
	"dry-run": "dry_run",
	"timeout": "timeout",
	"style":   "branch.style",
}

// LoadConfig reads configuration from the YAML file at path, then applies
// SPRINTBRANCH_* environment variables and any changed flags in flags
// (which may be nil). A missing file is only an error when the environment
// and flags do not supply a complete configuration; the token is the one
// key allowed to stay empty here since it may live in the keyring.
func LoadConfig(path string, flags *pflag.FlagSet) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Every key needs a default so Unmarshal sees env-only values.
	v.SetDefault("url", "")
	v.SetDefault("user", "")
	v.SetDefault("token", "")
	v.SetDefault("board", 0)
	v.SetDefault("project", "")
	v.SetDefault("prompt.category", true)
	v.SetDefault("branch.style", string(BranchStyleDescriptive))
	v.SetDefault("timeout", "0s")
	v.SetDefault("dry_run", false)

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	missing := false
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.Is(err, fs.ErrNotExist), errors.As(err, &notFound):
			missing = true
		default:
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		if missing {
			return nil, fmt.Errorf("config file %s not found: %w", path, err)
		}
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

func (c *AppConfig) validate() error {
	var problems []string
	if strings.TrimSpace(c.URL) == "" {
		problems = append(problems, "url is required")
	}
	if strings.TrimSpace(c.User) == "" {
		problems = append(problems, "user is required")
	}
	if c.Board <= 0 {
		problems = append(problems, "board must be a positive board id")
	}
	switch c.Branch.Style {
	case BranchStyleKey, BranchStyleDescriptive:
	default:
		problems = append(problems, fmt.Sprintf(
			"branch.style must be %q or %q, got %q",
			BranchStyleKey, BranchStyleDescriptive, c.Branch.Style,
		))
	}
	if c.Timeout < 0 {
		problems = append(problems, "timeout cannot be negative")
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// ResolveToken fills in Token from lookup when the configuration did not
// provide one.
func (c *AppConfig) ResolveToken(lookup func(user string) (string, error)) error {
	if c.Token != "" {
		return nil
	}
	token, err := lookup(c.User)
	if err != nil {
		return fmt.Errorf("no token configured for %s: %w", c.User, err)
	}
	if token == "" {
		return fmt.Errorf("no token configured for %s", c.User)
	}
	c.Token = token
	return nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed. The token is never written.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("url", cfg.URL)
	v.Set("user", cfg.User)
	v.Set("board", cfg.Board)
	v.Set("project", cfg.Project)
	v.Set("prompt.category", cfg.Prompt.Category)
	v.Set("branch.style", string(cfg.Branch.Style))

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
