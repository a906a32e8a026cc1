package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nhle/sprintbranch/internal/app"
	"github.com/nhle/sprintbranch/internal/git"
	"github.com/nhle/sprintbranch/internal/model"
	"github.com/nhle/sprintbranch/internal/theme"
	"github.com/nhle/sprintbranch/internal/ui/picker"
	"github.com/nhle/sprintbranch/internal/ui/progress"
)

func runPick(cmd *cobra.Command, _ []string) error {
	cfg, err := model.LoadConfig(configPath, cmd.Flags())
	if err != nil {
		return &configError{err: err}
	}

	tracker, err := app.NewTracker(cfg, app.OpenTokens())
	if err != nil {
		return &configError{err: err}
	}

	style := cfg.Branch.Style
	selector := picker.New(
		picker.NewHuhPrompter(accessible()),
		picker.WithCategories(cfg.Prompt.Category),
		picker.WithDescribe(func(sel model.Selection) string {
			return model.BranchName(sel, style)
		}),
	)

	// git's own chatter goes to stderr; stdout carries only the result.
	publisher := git.NewPublisher(git.Exec{},
		git.WithStdio(os.Stdin, os.Stderr, os.Stderr),
		git.WithLogger(slog.Default()),
	)

	pipeline := app.New(tracker, selector, publisher,
		app.Options{
			Board:   cfg.Board,
			Project: cfg.Project,
			Style:   style,
			DryRun:  cfg.DryRun,
			Timeout: cfg.Timeout,
		},
		app.WithWaiter(progress.NewRunner(os.Stderr)),
		app.WithLogger(slog.Default()),
	)

	out, err := pipeline.Run(cmd.Context())
	if err != nil {
		return err
	}

	if cfg.DryRun {
		fmt.Fprintf(cmd.ErrOrStderr(), "Would create %s\n", theme.BranchStyle.Render(out))
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), out)
	fmt.Fprintln(cmd.ErrOrStderr(), theme.SuccessStyle.Render("Branch created and pushed."))
	return nil
}
