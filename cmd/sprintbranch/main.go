// Command sprintbranch picks one of your issues from the active Jira
// sprint and creates and pushes a git branch named after it.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/nhle/sprintbranch/internal/model"
	"github.com/nhle/sprintbranch/internal/theme"
)

// Exit statuses outside the outcome kinds.
const (
	exitOther  = 1
	exitConfig = 2
)

// configError marks failures that happen before the pipeline starts.
type configError struct {
	err error
}

func (e *configError) Error() string { return e.err.Error() }
func (e *configError) Unwrap() error { return e.err }

var (
	configPath string
	verbose    bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := execute(ctx, newRootCmd(), os.Stderr)
	stop()
	os.Exit(code)
}

// execute runs cmd and maps its error to an exit status.
func execute(ctx context.Context, cmd *cobra.Command, stderr io.Writer) int {
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var cfgErr *configError
	if errors.As(err, &cfgErr) {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return exitConfig
	}

	var e *model.Error
	if !errors.As(err, &e) {
		// Flag parsing, keyring and prompt errors from the subcommands.
		fmt.Fprintln(stderr, err)
		return exitOther
	}

	fmt.Fprintln(stderr, theme.OutcomeStyle(e.Kind).Render(err.Error()))
	return e.Kind.ExitCode()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "sprintbranch",
		Short: "create a branch for one of your active sprint issues",
		Long: `
  Lists the issues assigned to you in the active sprint of the configured
  Jira board, lets you pick one, then runs
  git checkout -b <branch> && git push -u origin <branch>.
`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			setupLogging(cmd.ErrOrStderr())
		},
		RunE: runPick,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&configPath, "config", model.DefaultConfigPath(), "path to the config file")
	pf.BoolVarP(&verbose, "verbose", "v", false, "log every step to stderr")

	f := root.Flags()
	f.Int("board", 0, "agile board id (overrides config)")
	f.String("project", "", "required issue key prefix (overrides config)")
	f.String("style", "", "branch naming: key or descriptive (overrides config)")
	f.Bool("dry-run", false, "print the branch name instead of creating it")
	f.Duration("timeout", 0, "overall deadline for the run, e.g. 2m")

	root.AddCommand(newAuthCmd(), newInitCmd())
	return root
}

func setupLogging(w io.Writer) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// accessible reports whether prompts should use huh's accessible mode.
func accessible() bool {
	return os.Getenv("ACCESSIBLE") != ""
}
