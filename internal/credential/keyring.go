package credential

import (
	"fmt"

	"github.com/99designs/keyring"
)

const serviceName = "sprintbranch"

// Store reads and writes Jira API tokens in a keyring.
type Store struct {
	ring keyring.Keyring
}

// New wraps an already opened keyring. Tests pass keyring.NewArrayKeyring.
func New(ring keyring.Keyring) *Store {
	return &Store{ring: ring}
}

// Open returns a Store backed by the system keyring.
func Open() (*Store, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/sprintbranch/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("sprintbranch-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return New(ring), nil
}

// TokenKey is the keyring key under which user's token is stored.
func TokenKey(user string) string {
	return "jira-token-" + user
}

// Token retrieves the API token stored for user.
func (s *Store) Token(user string) (string, error) {
	item, err := s.ring.Get(TokenKey(user))
	if err != nil {
		return "", fmt.Errorf("getting token for %q: %w", user, err)
	}
	return string(item.Data), nil
}

// SetToken stores the API token for user.
func (s *Store) SetToken(user, token string) error {
	err := s.ring.Set(keyring.Item{
		Key:   TokenKey(user),
		Data:  []byte(token),
		Label: "Jira API token for " + user,
	})
	if err != nil {
		return fmt.Errorf("setting token for %q: %w", user, err)
	}
	return nil
}

// DeleteToken removes the stored token for user.
func (s *Store) DeleteToken(user string) error {
	if err := s.ring.Remove(TokenKey(user)); err != nil {
		return fmt.Errorf("deleting token for %q: %w", user, err)
	}
	return nil
}
