package setup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/sprintbranch/internal/model"
)

func TestValidators(t *testing.T) {
	assert.NoError(t, validateURL("https://example.atlassian.net"))
	assert.Error(t, validateURL(""))
	assert.Error(t, validateURL("example.atlassian.net"))

	assert.NoError(t, validateBoard(" 12 "))
	assert.Error(t, validateBoard("0"))
	assert.Error(t, validateBoard("twelve"))

	assert.NoError(t, validateRequired("User")("bob"))
	assert.EqualError(t, validateRequired("User")("  "), "User is required")
}

func TestAnswers(t *testing.T) {
	fb := &formBindings{
		url: " https://jira.example.com ", user: "bob", token: "t",
		board: "7", project: " abc ", category: false, style: model.BranchStyleKey,
	}

	a, err := fb.answers()
	require.NoError(t, err)
	assert.Equal(t, &Answers{
		Config: model.AppConfig{
			URL: "https://jira.example.com", User: "bob", Board: 7, Project: "ABC",
			Prompt: model.PromptConfig{Category: false},
			Branch: model.BranchConfig{Style: model.BranchStyleKey},
		},
		Token: "t",
	}, a)

	fb.board = "x"
	_, err = fb.answers()
	assert.Error(t, err)
}
