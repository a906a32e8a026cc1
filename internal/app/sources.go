package app

import (
	"fmt"
	"log/slog"

	"github.com/nhle/sprintbranch/internal/credential"
	"github.com/nhle/sprintbranch/internal/model"
	"github.com/nhle/sprintbranch/internal/source"
	"github.com/nhle/sprintbranch/internal/source/jira"
)

// TokenSource looks up the API token stored for a user.
type TokenSource interface {
	Token(user string) (string, error)
}

// NewTracker builds the Jira tracker for cfg. When the configuration
// carries no token it is loaded from tokens, which may be nil if no
// keyring is available.
func NewTracker(cfg *model.AppConfig, tokens TokenSource) (source.Tracker, error) {
	lookup := func(user string) (string, error) {
		if tokens == nil {
			return "", fmt.Errorf("no keyring available")
		}
		return tokens.Token(user)
	}
	if err := cfg.ResolveToken(lookup); err != nil {
		return nil, fmt.Errorf(
			"%w (set token in the config, export %s_TOKEN, or run `sprintbranch auth set`)",
			err, model.EnvPrefix,
		)
	}

	slog.Debug("Using Jira tracker", "url", cfg.URL, "user", cfg.User, "board", cfg.Board)
	return jira.NewAdapter(cfg.URL, cfg.User, cfg.Token), nil
}

// OpenTokens opens the system keyring, logging and returning nil when it
// is unavailable so configured tokens still work.
func OpenTokens() TokenSource {
	store, err := credential.Open()
	if err != nil {
		slog.Debug("Keyring unavailable", "error", err)
		return nil
	}
	return store
}
