package jira

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nhle/sprintbranch/internal/model"
)

// agilePath is the Jira Agile REST API root, relative to the site URL.
const agilePath = "rest/agile/1.0/"

// Client is a thin read-only HTTP client for the Jira Agile REST API.
// It handles basic authentication and JSON decoding, and reports every
// failure as a *model.Error. It keeps no state between calls.
type Client struct {
	baseURL    string
	auth       string
	httpClient *http.Client
}

// NewClient creates a new Jira HTTP client. The baseURL should be the
// root URL of the Jira site (e.g., https://example.atlassian.net).
// The user and token are sent as HTTP basic credentials.
func NewClient(baseURL, user, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/") + "/" + agilePath,
		auth: "Basic " + base64.StdEncoding.EncodeToString(
			[]byte(user+":"+token),
		),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// WithHTTPClient replaces the underlying http.Client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// URL returns the absolute URL for an Agile API path such as
// "board/7/sprint?state=active".
func (c *Client) URL(path string) string {
	return c.baseURL + strings.TrimLeft(path, "/")
}

// Query performs a GET on the Agile API path and decodes the JSON body
// into result. Failures to reach the server are KindTransport; anything
// wrong with the response itself is KindBadValue.
func (c *Client) Query(
	ctx context.Context,
	path string,
	result interface{},
) error {
	url := c.URL(path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &model.Error{
			Kind: model.KindTransport, Op: "building request",
			URL: url, Cause: err,
		}
	}

	req.Header.Set("Authorization", c.auth)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &model.Error{
			Kind: model.KindTransport, Op: "GET", URL: url, Cause: err,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &model.Error{
			Kind: model.KindBadValue, Op: "reading response body",
			URL: url, Status: resp.StatusCode, Cause: err,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &model.Error{
			Kind: model.KindBadValue, Op: "GET", URL: url,
			Status: resp.StatusCode, Cause: statusError(body),
		}
	}

	if err := json.Unmarshal(body, result); err != nil {
		return &model.Error{
			Kind: model.KindBadValue, Op: "decoding response",
			URL: url, Status: resp.StatusCode, Cause: err,
		}
	}

	return nil
}

// statusError turns a Jira error body into an error, falling back to the
// raw body when it is not in Jira's error format.
func statusError(body []byte) error {
	var jiraErr ErrorResponse
	if json.Unmarshal(body, &jiraErr) == nil &&
		(len(jiraErr.ErrorMessages) > 0 || len(jiraErr.Errors) > 0) {
		return fmt.Errorf(
			"jira API error: %s %v",
			strings.Join(jiraErr.ErrorMessages, "; "), jiraErr.Errors,
		)
	}
	text := strings.TrimSpace(string(body))
	if len(text) > 200 {
		text = text[:200] + "..."
	}
	return fmt.Errorf("unexpected response: %q", text)
}
