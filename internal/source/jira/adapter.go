package jira

import (
	"context"
	"fmt"
	"net/url"

	"github.com/nhle/sprintbranch/internal/model"
	"github.com/nhle/sprintbranch/internal/source"
)

// NoSprint is returned by ActiveSprintID when no active sprint was found.
const NoSprint = -1

// assignedJQL limits sprint issues to the requesting user.
const assignedJQL = "assignee=currentUser()"

// Adapter implements source.Tracker for Jira Cloud and Server/DC.
type Adapter struct {
	client *Client
}

// NewAdapter creates a new Jira tracker adapter.
func NewAdapter(baseURL, user, token string) *Adapter {
	return &Adapter{client: NewClient(baseURL, user, token)}
}

// NewAdapterWithClient creates an adapter around an existing client.
func NewAdapterWithClient(c *Client) *Adapter {
	return &Adapter{client: c}
}

// Type returns the source type identifier for Jira.
func (a *Adapter) Type() source.SourceType {
	return source.SourceTypeJira
}

// ActiveSprintID returns the id of the first active sprint on the board.
// When there is none, or the tracker could not be queried, it returns
// NoSprint and a KindNoActiveSprint error wrapping the cause.
func (a *Adapter) ActiveSprintID(ctx context.Context, boardID int) (int, error) {
	path := fmt.Sprintf("board/%d/sprint?state=active", boardID)

	var page SprintPage
	if err := a.client.Query(ctx, path, &page); err != nil {
		return NoSprint, &model.Error{
			Kind: model.KindNoActiveSprint, Op: "resolving active sprint",
			URL: a.client.URL(path), Cause: err,
		}
	}

	if len(page.Values) == 0 || page.Values[0].ID == 0 {
		return NoSprint, &model.Error{
			Kind: model.KindNoActiveSprint, Op: "resolving active sprint",
			URL:   a.client.URL(path),
			Cause: fmt.Errorf("board %d has no active sprint", boardID),
		}
	}

	return page.Values[0].ID, nil
}

// ActiveSprintIssues returns one choice per issue assigned to the current
// user in the sprint. A nil slice with an error means the tracker gave
// no usable answer; an empty slice with a nil error means nothing is
// assigned. Issues without a key are skipped.
func (a *Adapter) ActiveSprintIssues(
	ctx context.Context,
	sprintID int,
) ([]model.Choice, error) {
	query := url.Values{}
	query.Set("fields", "summary")
	query.Set("jql", assignedJQL)
	path := fmt.Sprintf("sprint/%d/issue?%s", sprintID, query.Encode())

	var page IssuePage
	if err := a.client.Query(ctx, path, &page); err != nil {
		return nil, fmt.Errorf("listing issues of sprint %d: %w", sprintID, err)
	}

	if page.Issues == nil {
		return nil, &model.Error{
			Kind: model.KindBadValue, Op: "listing sprint issues",
			URL:   a.client.URL(path),
			Cause: fmt.Errorf("response for sprint %d has no issues field", sprintID),
		}
	}

	return issuesToChoices(page.Issues), nil
}

// issuesToChoices maps issues to choices, dropping those without a key.
func issuesToChoices(issues []Issue) []model.Choice {
	choices := make([]model.Choice, 0, len(issues))
	for _, issue := range issues {
		if issue.Key == "" {
			continue
		}
		title := issue.Key
		if issue.Fields.Summary != "" {
			title += " - " + issue.Fields.Summary
		}
		choices = append(choices, model.Choice{
			Title:   title,
			Value:   issue.Key,
			Summary: issue.Fields.Summary,
		})
	}
	return choices
}
