package git

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/nhle/sprintbranch/internal/model"
)

// Publisher checks for a work tree and creates and pushes branches with
// the git CLI.
type Publisher struct {
	exec   Executor
	dir    string
	remote string
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithDir runs git in dir instead of the current directory.
func WithDir(dir string) Option {
	return func(p *Publisher) { p.dir = dir }
}

// WithRemote pushes to remote instead of "origin".
func WithRemote(remote string) Option {
	return func(p *Publisher) { p.remote = remote }
}

// WithStdio replaces the streams git inherits.
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(p *Publisher) {
		p.stdin, p.stdout, p.stderr = stdin, stdout, stderr
	}
}

// WithLogger sets the logger used for the commands run.
func WithLogger(l *slog.Logger) Option {
	return func(p *Publisher) { p.logger = l }
}

// NewPublisher creates a Publisher that runs commands through ex.
func NewPublisher(ex Executor, opts ...Option) *Publisher {
	p := &Publisher{
		exec:   ex,
		remote: "origin",
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Publisher) command(ctx context.Context, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = p.dir
	return cmd
}

// InsideWorkTree reports whether git recognizes the working directory as
// part of a repository. A failing command or empty output both yield a
// KindNotInGitDir error.
func (p *Publisher) InsideWorkTree(ctx context.Context) error {
	cmd := p.command(ctx, "rev-parse", "--git-dir")
	p.logger.Debug("Checking for git repository", "cmd", ToString(cmd))

	out, err := p.exec.Output(cmd)
	if err != nil {
		return &model.Error{
			Kind: model.KindNotInGitDir, Op: ToString(cmd), Cause: err,
		}
	}
	if strings.TrimSpace(string(out)) == "" {
		return model.Errorf(
			model.KindNotInGitDir, ToString(cmd), "no git directory reported",
		)
	}
	return nil
}

// CreateAndPush creates branch from HEAD, checks it out, and pushes it
// with upstream tracking. Both commands share the terminal so git can
// prompt for credentials; their output is also captured and returned.
// A branch created before a failed push is left in place.
func (p *Publisher) CreateAndPush(ctx context.Context, branch string) (string, error) {
	if branch == "" || strings.HasPrefix(branch, "-") {
		return "", model.Errorf(
			model.KindConsole, "validating branch", "invalid branch name %q", branch,
		)
	}

	var captured bytes.Buffer
	steps := [][]string{
		{"checkout", "-b", branch},
		{"push", "-u", p.remote, branch},
	}

	for _, args := range steps {
		cmd := p.command(ctx, args...)
		cmd.Stdin = p.stdin
		cmd.Stdout = io.MultiWriter(p.stdout, &captured)
		cmd.Stderr = io.MultiWriter(p.stderr, &captured)

		p.logger.Debug("Running git", "cmd", ToString(cmd))
		if err := p.exec.Run(cmd); err != nil {
			return captured.String(), &model.Error{
				Kind: model.KindConsole, Op: ToString(cmd),
				Cause: fmt.Errorf("git %s failed: %w", args[0], err),
			}
		}
	}

	out := captured.String()
	if strings.TrimSpace(out) == "" {
		return "", model.Errorf(
			model.KindConsole, "git push", "no output from git for branch %s", branch,
		)
	}
	return out, nil
}
