package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings available while a request is running.
type KeyMap struct {
	// Cancel aborts the request in flight.
	Cancel key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Cancel: key.NewBinding(
			key.WithKeys("ctrl+c", "esc", "q"),
			key.WithHelp("ctrl+c/esc", "cancel"),
		),
	}
}

// ShortHelp returns the keybindings shown next to the spinner.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Cancel}
}
