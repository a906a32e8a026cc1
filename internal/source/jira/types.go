package jira

// SprintPage is the response from GET board/{id}/sprint.
type SprintPage struct {
	MaxResults int      `json:"maxResults"`
	StartAt    int      `json:"startAt"`
	IsLast     bool     `json:"isLast"`
	Values     []Sprint `json:"values"`
}

// Sprint represents a single sprint of an agile board.
type Sprint struct {
	ID            int    `json:"id"`
	State         string `json:"state"`
	Name          string `json:"name"`
	OriginBoardID int    `json:"originBoardId"`
	Goal          string `json:"goal,omitempty"`
}

// IssuePage is the response from GET sprint/{id}/issue. Issues is nil
// when the field was absent or null, and non-nil when it was a list.
type IssuePage struct {
	StartAt    int     `json:"startAt"`
	MaxResults int     `json:"maxResults"`
	Total      int     `json:"total"`
	Issues     []Issue `json:"issues"`
}

// Issue represents a single Jira issue from the REST API.
type Issue struct {
	ID     string      `json:"id"`
	Key    string      `json:"key"`
	Self   string      `json:"self"`
	Fields IssueFields `json:"fields"`
}

// IssueFields contains the fields requested for an issue. Only summary
// is asked for.
type IssueFields struct {
	Summary string `json:"summary"`
}

// ErrorResponse is the standard Jira error response format.
type ErrorResponse struct {
	ErrorMessages []string          `json:"errorMessages"`
	Errors        map[string]string `json:"errors"`
}
