package prefs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreyes/memtrail/internal/memory"
)

func docsBaseline(t *testing.T) Preferences {
	t.Helper()
	return InferPreferences([]memory.Command{
		cmd("document the endpoints", []string{"python"}, ""),
		cmd("document the schema", nil, ""),
		cmd("test the handler", nil, ""),
		cmd("deploy with docker", nil, ""),
	})
}

func TestContextualMatchesDocumentationGroup(t *testing.T) {
	got := ContextualPreferences("please update the docs", docsBaseline(t))

	assert.Equal(t, []string{"documentation"}, got.MatchedGroups)
	assert.Empty(t, got.Note, "matched context must not use the fallback")
	require.NotNil(t, got.PreferredLanguage)
	assert.Equal(t, "python", *got.PreferredLanguage)

	// "documentation" shares a substring with the "doc" trigger; "test"
	// and "deploy" are unrelated to the documentation group.
	assert.Contains(t, got.Tasks, "documentation")
	assert.NotContains(t, got.Tasks, "test")
	assert.NotContains(t, got.Tasks, "deploy")
	assert.Equal(t, len(got.Tasks)+len(got.Styles)+len(got.Frameworks)+len(got.Tools), got.SignalsOverlap)
}

func TestContextualFallbackOnNoMatch(t *testing.T) {
	baseline := docsBaseline(t)
	got := ContextualPreferences("hello", baseline)

	assert.Empty(t, got.MatchedGroups)
	assert.Equal(t, fallbackNote, got.Note)
	assert.Equal(t, head(baseline.CommonTasks, 3), got.Tasks)
	assert.Equal(t, head(baseline.Frameworks, 3), got.Frameworks)
	assert.Equal(t, head(baseline.Tools, 5), got.Tools)
}

func TestContextualMultipleGroups(t *testing.T) {
	got := ContextualPreferences("fix the slow tests", docsBaseline(t))

	assert.Contains(t, got.MatchedGroups, "testing")
	assert.Contains(t, got.MatchedGroups, "performance")
	assert.Contains(t, got.MatchedGroups, "debug")
	assert.Empty(t, got.Note)
	assert.Contains(t, got.Tasks, "test")
}

func TestContextualVerbatimContextMatch(t *testing.T) {
	// An entry appearing verbatim in the context is kept even when no
	// relevance word relates to it.
	baseline := InferPreferences([]memory.Command{
		cmd("deploy with docker", nil, ""),
		cmd("test the release", nil, ""),
	})
	got := ContextualPreferences("run tests inside docker", baseline)

	assert.Equal(t, []string{"testing"}, got.MatchedGroups)
	assert.Contains(t, got.Tools, "docker")
}

func TestContextualEmptyContextFallsBack(t *testing.T) {
	got := ContextualPreferences("", docsBaseline(t))
	assert.Empty(t, got.MatchedGroups)
	assert.Equal(t, fallbackNote, got.Note)
}
