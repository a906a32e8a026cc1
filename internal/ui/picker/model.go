package picker

import (
	"context"
	"io"

	"github.com/charmbracelet/huh"

	"github.com/nhle/sprintbranch/internal/model"
)

// HuhPrompter asks questions with huh forms on the terminal.
type HuhPrompter struct {
	accessible bool
	input      io.Reader
	output     io.Writer
}

// NewHuhPrompter creates a terminal prompter. Accessible mode replaces
// the interactive widgets with plain numbered prompts.
func NewHuhPrompter(accessible bool) *HuhPrompter {
	return &HuhPrompter{accessible: accessible}
}

// WithIO redirects the prompter's input and output.
func (h *HuhPrompter) WithIO(in io.Reader, out io.Writer) *HuhPrompter {
	h.input, h.output = in, out
	return h
}

func (h *HuhPrompter) run(ctx context.Context, field huh.Field) error {
	form := huh.NewForm(huh.NewGroup(field)).
		WithAccessible(h.accessible).
		WithShowHelp(true)
	if h.input != nil {
		form = form.WithInput(h.input)
	}
	if h.output != nil {
		form = form.WithOutput(h.output)
	}
	return form.RunWithContext(ctx)
}

// SelectIssue shows every choice and returns the picked value.
func (h *HuhPrompter) SelectIssue(ctx context.Context, choices []model.Choice) (string, error) {
	opts := make([]huh.Option[string], len(choices))
	for i, c := range choices {
		opts[i] = huh.NewOption(c.Title, c.Value)
	}

	var value string
	err := h.run(ctx, huh.NewSelect[string]().
		Title("Pick an issue to work on").
		Options(opts...).
		Value(&value),
	)
	return value, err
}

// SelectCategory asks what kind of work the issue is.
func (h *HuhPrompter) SelectCategory(ctx context.Context, issue string) (model.Category, error) {
	opts := make([]huh.Option[model.Category], len(model.Categories))
	for i, c := range model.Categories {
		opts[i] = huh.NewOption(string(c), c)
	}

	var category model.Category
	err := h.run(ctx, huh.NewSelect[model.Category]().
		Title("Issue category?").
		Description(issue).
		Options(opts...).
		Value(&category),
	)
	return category, err
}

// Confirm asks a yes/no question, defaulting to yes.
func (h *HuhPrompter) Confirm(ctx context.Context, message string) (bool, error) {
	ok := true
	err := h.run(ctx, huh.NewConfirm().
		Title(message).
		Affirmative("Yes").
		Negative("No").
		Value(&ok),
	)
	return ok, err
}
