package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/sprintbranch/internal/model"
	"github.com/nhle/sprintbranch/internal/source"
)

// Stage is a step of a run, in execution order.
type Stage int

const (
	StageResolvingSprint Stage = iota
	StageListingIssues
	StageSelecting
	StageValidating
	StageCheckingRepo
	StagePublishing
)

var stageNames = [...]string{
	"resolving-sprint",
	"listing-issues",
	"selecting",
	"validating",
	"checking-repo",
	"publishing",
}

func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// Selector asks the user to pick one of the choices.
type Selector interface {
	Ask(ctx context.Context, choices []model.Choice) (*model.Selection, error)
}

// Publisher creates the branch in the local repository and pushes it.
type Publisher interface {
	InsideWorkTree(ctx context.Context) error
	CreateAndPush(ctx context.Context, branch string) (string, error)
}

// Waiter runs slow work, typically behind a spinner.
type Waiter interface {
	Run(ctx context.Context, title string, fn func(ctx context.Context) error) error
}

// Options are the per-run settings taken from configuration.
type Options struct {
	Board   int
	Project string
	Style   model.BranchStyle
	DryRun  bool
	Timeout time.Duration
}

// Pipeline wires the tracker, the selector and git together.
type Pipeline struct {
	sprints   source.SprintResolver
	issues    source.IssueLister
	selector  Selector
	publisher Publisher
	waiter    Waiter
	opts      Options
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithWaiter shows progress for the tracker requests through w.
func WithWaiter(w Waiter) Option {
	return func(p *Pipeline) { p.waiter = w }
}

// WithLogger sets the logger stage transitions are written to.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// New creates a Pipeline from its collaborators.
func New(
	tracker source.Tracker,
	selector Selector,
	publisher Publisher,
	opts Options,
	options ...Option,
) *Pipeline {
	p := &Pipeline{
		sprints:   tracker,
		issues:    tracker,
		selector:  selector,
		publisher: publisher,
		waiter:    directWaiter{},
		opts:      opts,
		logger:    slog.Default(),
	}
	for _, o := range options {
		o(p)
	}
	if p.opts.Style == "" {
		p.opts.Style = model.BranchStyleDescriptive
	}
	return p
}

// directWaiter runs the work without any progress display.
type directWaiter struct{}

func (directWaiter) Run(ctx context.Context, _ string, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Run executes one pass of the pipeline. It returns the output of the
// git commands (or, in dry-run mode, the branch name) on success, and a
// *model.Error naming the failure kind otherwise. Git is only touched
// once a usable selection exists, and the branch is only created inside
// a work tree.
func (p *Pipeline) Run(ctx context.Context) (string, error) {
	if p.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.opts.Timeout)
		defer cancel()
	}

	log := p.logger.With("run", uuid.NewString())

	log.Debug("Stage", "stage", StageResolvingSprint, "board", p.opts.Board)
	sprintID, err := p.resolveSprint(ctx)
	if err != nil {
		return "", p.fail(log, StageResolvingSprint, err)
	}

	log.Debug("Stage", "stage", StageListingIssues, "sprint", sprintID)
	choices, err := p.listIssues(ctx, sprintID)
	if err != nil {
		return "", p.fail(log, StageListingIssues, err)
	}

	log.Debug("Stage", "stage", StageSelecting, "choices", len(choices))
	sel, err := p.selector.Ask(ctx, choices)
	if err != nil {
		return "", p.fail(log, StageSelecting, &model.Error{
			Kind: model.KindBadAskValue, Op: "asking for an issue", Cause: err,
		})
	}
	switch {
	case sel == nil || strings.TrimSpace(sel.Value) == "":
		return "", p.fail(log, StageSelecting, model.Errorf(
			model.KindBadAskValue, "asking for an issue", "no issue selected",
		))
	case !sel.Confirm:
		return "", p.fail(log, StageSelecting, model.Errorf(
			model.KindBadAskValue, "asking for an issue", "selection not confirmed",
		))
	}

	log.Debug("Stage", "stage", StageValidating, "value", sel.Value)
	branch, err := p.branchName(*sel)
	if err != nil {
		return "", p.fail(log, StageValidating, err)
	}

	log.Debug("Stage", "stage", StageCheckingRepo, "branch", branch)
	if err := p.publisher.InsideWorkTree(ctx); err != nil {
		return "", p.fail(log, StageCheckingRepo, err)
	}

	if p.opts.DryRun {
		log.Info("Dry run, not creating branch", "branch", branch)
		return branch, nil
	}

	log.Debug("Stage", "stage", StagePublishing, "branch", branch)
	out, err := p.publisher.CreateAndPush(ctx, branch)
	if err != nil {
		return "", p.fail(log, StagePublishing, err)
	}

	log.Info("Branch published", "branch", branch)
	return out, nil
}

func (p *Pipeline) resolveSprint(ctx context.Context) (int, error) {
	var sprintID int
	err := p.waiter.Run(ctx, "Finding the active sprint...", func(ctx context.Context) error {
		var err error
		sprintID, err = p.sprints.ActiveSprintID(ctx, p.opts.Board)
		return err
	})

	switch {
	case errors.Is(err, model.ErrNoActiveSprint):
		return 0, err
	case err != nil:
		return 0, &model.Error{
			Kind: model.KindNoActiveSprint, Op: "resolving active sprint", Cause: err,
		}
	case sprintID < 0:
		return 0, model.Errorf(
			model.KindNoActiveSprint, "resolving active sprint",
			"board %d has no active sprint", p.opts.Board,
		)
	}
	return sprintID, nil
}

func (p *Pipeline) listIssues(ctx context.Context, sprintID int) ([]model.Choice, error) {
	var choices []model.Choice
	err := p.waiter.Run(ctx, "Loading your sprint issues...", func(ctx context.Context) error {
		var err error
		choices, err = p.issues.ActiveSprintIssues(ctx, sprintID)
		return err
	})

	switch {
	case errors.Is(err, model.ErrTransport):
		return nil, err
	case err != nil:
		return nil, &model.Error{
			Kind: model.KindBadAskValue, Op: "listing sprint issues", Cause: err,
		}
	case len(choices) == 0:
		return nil, model.Errorf(
			model.KindBadAskValue, "listing sprint issues",
			"no issues assigned to you in sprint %d", sprintID,
		)
	}
	return choices, nil
}

// branchName validates the selection against the configured project and
// derives the branch to create.
func (p *Pipeline) branchName(sel model.Selection) (string, error) {
	if project := strings.TrimSpace(p.opts.Project); project != "" {
		prefix := project + "-"
		if len(sel.Value) < len(prefix) || !strings.EqualFold(sel.Value[:len(prefix)], prefix) {
			return "", model.Errorf(
				model.KindConsole, "validating selection",
				"%s does not belong to project %s", sel.Value, project,
			)
		}
	}

	branch := model.BranchName(sel, p.opts.Style)
	if branch == "" {
		return "", model.Errorf(
			model.KindBadAskValue, "validating selection",
			"no usable branch name in %q", sel.Value,
		)
	}
	return branch, nil
}

func (p *Pipeline) fail(log *slog.Logger, stage Stage, err error) error {
	log.Debug("Run failed", "stage", stage, "kind", model.KindOf(err), "error", err)
	return err
}
