package setup

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/nhle/sprintbranch/internal/model"
)

// Answers holds what the setup form collected.
type Answers struct {
	Config model.AppConfig
	Token  string
}

// formBindings holds form field values that need conversion afterwards.
type formBindings struct {
	url      string
	user     string
	token    string
	board    string
	project  string
	category bool
	style    model.BranchStyle
}

// Run asks for the Jira connection settings, starting from current.
func Run(ctx context.Context, current *model.AppConfig, accessible bool) (*Answers, error) {
	fb := &formBindings{category: true, style: model.BranchStyleDescriptive}
	if current != nil {
		fb.url = current.URL
		fb.user = current.User
		fb.project = current.Project
		fb.category = current.Prompt.Category
		if current.Board > 0 {
			fb.board = strconv.Itoa(current.Board)
		}
		if current.Branch.Style != "" {
			fb.style = current.Branch.Style
		}
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Base URL").
				Description("Jira site URL (e.g., https://example.atlassian.net)").
				Placeholder("https://example.atlassian.net").
				Value(&fb.url).
				Validate(validateURL),
			huh.NewInput().
				Title("User").
				Description("Account used for API access").
				Placeholder("you@example.com").
				Value(&fb.user).
				Validate(validateRequired("User")),
			huh.NewInput().
				Title("API Token").
				Description("Stored in the system keyring, never in the config file").
				EchoMode(huh.EchoModePassword).
				Value(&fb.token).
				Validate(validateRequired("Token")),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Board ID").
				Description("Agile board whose active sprint is used").
				Value(&fb.board).
				Validate(validateBoard),
			huh.NewInput().
				Title("Project Key").
				Description("Optional; only issues with this key prefix are accepted").
				Placeholder("ABC").
				Value(&fb.project),
			huh.NewSelect[model.BranchStyle]().
				Title("Branch Names").
				Options(
					huh.NewOption("Key and summary (ABC-1-Fix-login)", model.BranchStyleDescriptive),
					huh.NewOption("Key only (ABC-1)", model.BranchStyleKey),
				).
				Value(&fb.style),
			huh.NewConfirm().
				Title("Ask for a category").
				Description("Prefix branches with feature/, bugfix/ or test/").
				Affirmative("Yes").
				Negative("No").
				Value(&fb.category),
		),
	).WithAccessible(accessible)

	if err := form.RunWithContext(ctx); err != nil {
		return nil, err
	}

	return fb.answers()
}

func (fb *formBindings) answers() (*Answers, error) {
	board, err := strconv.Atoi(strings.TrimSpace(fb.board))
	if err != nil {
		return nil, fmt.Errorf("invalid board id %q: %w", fb.board, err)
	}
	return &Answers{
		Config: model.AppConfig{
			URL:     strings.TrimSpace(fb.url),
			User:    strings.TrimSpace(fb.user),
			Board:   board,
			Project: strings.ToUpper(strings.TrimSpace(fb.project)),
			Prompt:  model.PromptConfig{Category: fb.category},
			Branch:  model.BranchConfig{Style: fb.style},
		},
		Token: fb.token,
	}, nil
}

// AskToken asks for an API token only.
func AskToken(ctx context.Context, user string, accessible bool) (string, error) {
	var token string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("API Token").
				Description("Token for " + user).
				EchoMode(huh.EchoModePassword).
				Value(&token).
				Validate(validateRequired("Token")),
		),
	).WithAccessible(accessible).RunWithContext(ctx)
	return token, err
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateURL(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("URL is required")
	}
	parsed, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("URL must include scheme and host (e.g., https://example.com)")
	}
	return nil
}

func validateBoard(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return fmt.Errorf("board must be a positive number")
	}
	return nil
}
