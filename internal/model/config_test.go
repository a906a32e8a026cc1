package model

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
url: https://example.atlassian.net/
user: alice@example.com
token: s3cret
board: 12
project: TQS
prompt:
  category: false
branch:
  style: key
timeout: 45s
`)

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, &AppConfig{
		URL:     "https://example.atlassian.net/",
		User:    "alice@example.com",
		Token:   "s3cret",
		Board:   12,
		Project: "TQS",
		Prompt:  PromptConfig{Category: false},
		Branch:  BranchConfig{Style: BranchStyleKey},
		Timeout: 45 * time.Second,
	}, cfg)
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, "url: https://jira.example.com\nuser: bob\nboard: 3\n")

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.True(t, cfg.Prompt.Category)
	assert.Equal(t, BranchStyleDescriptive, cfg.Branch.Style)
	assert.Zero(t, cfg.Timeout)
	assert.Empty(t, cfg.Token)
	assert.False(t, cfg.DryRun)
}

func TestLoadConfigEnvAndFlags(t *testing.T) {
	path := writeConfig(t, "url: https://jira.example.com\nuser: bob\nboard: 3\nproject: ABC\n")
	t.Setenv("SPRINTBRANCH_TOKEN", "from-env")
	t.Setenv("SPRINTBRANCH_BRANCH_STYLE", "key")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("board", 0, "")
	flags.String("project", "", "")
	flags.Bool("dry-run", false, "")
	require.NoError(t, flags.Parse([]string{"--board", "9", "--dry-run"}))

	cfg, err := LoadConfig(path, flags)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Token)
	assert.Equal(t, BranchStyleKey, cfg.Branch.Style)
	assert.Equal(t, 9, cfg.Board, "changed flag wins over the file")
	assert.Equal(t, "ABC", cfg.Project, "unchanged flag leaves the file value")
	assert.True(t, cfg.DryRun)
}

func TestLoadConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.yaml")

	_, err := LoadConfig(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.Contains(t, err.Error(), "url is required")
}

func TestLoadConfigEnvOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.yaml")
	t.Setenv("SPRINTBRANCH_URL", "https://jira.example.com")
	t.Setenv("SPRINTBRANCH_USER", "carol")
	t.Setenv("SPRINTBRANCH_BOARD", "5")

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Board)
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "no board", content: "url: https://x\nuser: a\n", wantErr: "board must be a positive board id"},
		{name: "bad style", content: "url: https://x\nuser: a\nboard: 1\nbranch:\n  style: fancy\n", wantErr: "branch.style"},
		{name: "broken yaml", content: "url: [\n", wantErr: "reading config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content), nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestResolveToken(t *testing.T) {
	cfg := &AppConfig{User: "alice", Token: "set"}
	require.NoError(t, cfg.ResolveToken(func(string) (string, error) {
		t.Fatal("lookup must not run when a token is configured")
		return "", nil
	}))

	cfg = &AppConfig{User: "alice"}
	require.NoError(t, cfg.ResolveToken(func(user string) (string, error) {
		assert.Equal(t, "alice", user)
		return "from-ring", nil
	}))
	assert.Equal(t, "from-ring", cfg.Token)

	cfg = &AppConfig{User: "alice"}
	err := cfg.ResolveToken(func(string) (string, error) { return "", errors.New("not found") })
	assert.ErrorContains(t, err, "no token configured for alice")
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	in := &AppConfig{
		URL: "https://jira.example.com", User: "dave", Token: "never-written",
		Board: 4, Project: "XYZ",
		Prompt: PromptConfig{Category: true},
		Branch: BranchConfig{Style: BranchStyleKey},
	}
	require.NoError(t, SaveConfig(path, in))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "never-written")

	out, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "XYZ", out.Project)
	assert.Equal(t, 4, out.Board)
	assert.Equal(t, BranchStyleKey, out.Branch.Style)
}
