package picker

import (
	"context"
	"fmt"

	"github.com/nhle/sprintbranch/internal/model"
)

// Prompter asks the individual questions. HuhPrompter is the terminal
// implementation.
type Prompter interface {
	SelectIssue(ctx context.Context, choices []model.Choice) (string, error)
	SelectCategory(ctx context.Context, issue string) (model.Category, error)
	Confirm(ctx context.Context, message string) (bool, error)
}

// Picker turns a list of choices into a Selection.
type Picker struct {
	prompter   Prompter
	categories bool
	describe   func(model.Selection) string
}

// Option configures a Picker.
type Option func(*Picker)

// WithCategories enables the category select and the confirmation.
func WithCategories(enabled bool) Option {
	return func(p *Picker) { p.categories = enabled }
}

// WithDescribe sets how a selection is shown in the confirmation message.
func WithDescribe(fn func(model.Selection) string) Option {
	return func(p *Picker) { p.describe = fn }
}

// New creates a Picker that asks through prompter.
func New(prompter Prompter, opts ...Option) *Picker {
	p := &Picker{
		prompter: prompter,
		describe: func(sel model.Selection) string {
			return string(sel.Category) + "/" + sel.Value
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Ask prompts for an issue and, when categories are enabled, a category
// and a confirmation. A failing prompt yields a KindBadResponse error; an
// empty answer is returned as is and left for the caller to reject.
func (p *Picker) Ask(ctx context.Context, choices []model.Choice) (*model.Selection, error) {
	value, err := p.prompter.SelectIssue(ctx, choices)
	if err != nil {
		return nil, &model.Error{
			Kind: model.KindBadResponse, Op: "selecting issue", Cause: err,
		}
	}

	sel := &model.Selection{Value: value, Confirm: true}
	for _, c := range choices {
		if c.Value == value {
			sel.Summary = c.Summary
			break
		}
	}

	if !p.categories {
		return sel, nil
	}

	sel.Category, err = p.prompter.SelectCategory(ctx, value)
	if err != nil {
		return nil, &model.Error{
			Kind: model.KindBadResponse, Op: "selecting category", Cause: err,
		}
	}

	sel.Confirm, err = p.prompter.Confirm(
		ctx, fmt.Sprintf("Is this correct?\n%s", p.describe(*sel)),
	)
	if err != nil {
		return nil, &model.Error{
			Kind: model.KindBadResponse, Op: "confirming", Cause: err,
		}
	}

	return sel, nil
}
