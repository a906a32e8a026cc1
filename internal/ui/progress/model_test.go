package progress

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelDone(t *testing.T) {
	boom := errors.New("boom")
	m := NewModel("Fetching", nil, func() {})

	updated, cmd := m.Update(doneMsg{err: boom})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	final := updated.(Model)
	assert.ErrorIs(t, final.Err(), boom)
	assert.Empty(t, final.View())
}

func TestModelCancelKey(t *testing.T) {
	canceled := 0
	m := NewModel("Fetching", nil, func() { canceled++ })
	assert.Contains(t, m.View(), "Fetching")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.Nil(t, cmd, "keeps running until the work reports back")
	assert.Equal(t, 1, canceled)
	assert.Contains(t, updated.(Model).View(), "Canceling")

	updated, _ = updated.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, 1, canceled, "cancel is only called once")

	_, cmd = updated.Update(doneMsg{err: context.Canceled})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModelIgnoresOtherKeys(t *testing.T) {
	canceled := false
	m := NewModel("Fetching", nil, func() { canceled = true })

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Nil(t, cmd)
	assert.False(t, canceled)
}

func TestDisabledRunner(t *testing.T) {
	want := errors.New("failed")
	called := false

	err := Disabled().Run(context.Background(), "Fetching", func(ctx context.Context) error {
		called = true
		return want
	})
	assert.True(t, called)
	assert.ErrorIs(t, err, want)
}
