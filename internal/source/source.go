package source

import (
	"context"

	"github.com/nhle/sprintbranch/internal/model"
)

// SourceType identifies the kind of tracker integration.
type SourceType string

const (
	SourceTypeJira SourceType = "jira"
)

// SprintResolver finds the active sprint of a board.
type SprintResolver interface {
	// ActiveSprintID returns the active sprint's id, or a negative id
	// together with a KindNoActiveSprint error.
	ActiveSprintID(ctx context.Context, boardID int) (int, error)
}

// IssueLister lists the current user's issues in a sprint.
type IssueLister interface {
	// ActiveSprintIssues returns one choice per keyed issue. A nil
	// slice with an error means the tracker gave no usable answer.
	ActiveSprintIssues(ctx context.Context, sprintID int) ([]model.Choice, error)
}

// Tracker defines the contract every tracker integration must implement.
type Tracker interface {
	// Type returns the source type identifier.
	Type() SourceType

	SprintResolver
	IssueLister
}
