package report

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/RoriBug/internal/graph"
)

type fakeCompleter struct {
	prompt string
	reply  string
	err    error
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.reply, f.err
}

func writeGraph(t *testing.T, dir, app string) (transitionHash string) {
	t.Helper()
	a, b := strings.Repeat("a", 64), strings.Repeat("b", 64)
	transitionHash = strings.Repeat("e", 64)
	content := strings.Join([]string{
		"Transitions",
		transitionHash + ": (s:" + a + ",t:" + b + "): [act=(1) click, cp=[ty=Button, idx=upload, tx=Upload, dsc=]] weight=4",
		"States",
		a + ", MainActivity, x",
		b + ", UploadActivity, y",
	}, "\n")
	graphDir := filepath.Join(dir, strings.ReplaceAll(app, " ", "_"), "run1")
	require.NoError(t, os.MkdirAll(graphDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(graphDir, "app_graph.txt"), []byte(content), 0o644))
	return transitionHash
}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt("button is broken", []string{"T1: (s:S1,t:S2): a", "T2: (s:S2,t:S1): b"})

	assert.Contains(t, p, "**Android Bug Report Generator**")
	assert.Contains(t, p, `"button is broken"`)
	assert.Contains(t, p, "T1: (s:S1,t:S2): a\nT2: (s:S2,t:S1): b")
	assert.Contains(t, p, "`<transition_id>`")
	assert.NotContains(t, p, "{user_input}")
	assert.NotContains(t, p, "{transitions}")
}

func TestBuildPrompt_KeepsTemplateLayout(t *testing.T) {
	p := BuildPrompt("crash", nil)

	assert.True(t, strings.HasPrefix(p, "\n    **Android Bug Report Generator**\n"))
	for _, line := range []string{
		"    - **Title**  \n",
		"    **Bug Description:**  \n    \"crash\"\n",
		"    - A **source screen (s)** \u2014 where the interaction starts.  \n",
		"    - A **target screen (t)** \u2014 the result of the interaction.  \n",
		"    9. Append the **transition ID** to the end of each step in this format: `<transition_id>`.  \n",
	} {
		assert.Contains(t, p, line)
	}
	assert.True(t, strings.HasSuffix(p, "consistency in the generated report.\n    "))
}

func TestBuildPrompt_DescriptionIsNotReexpanded(t *testing.T) {
	p := BuildPrompt("literal {transitions}", []string{"T1: x"})
	assert.Contains(t, p, `"literal {transitions}"`)
}

func TestGenerator_Generate(t *testing.T) {
	dir := t.TempDir()
	h := writeGraph(t, dir, "Wikimedia Commons")
	ai := &fakeCompleter{reply: "**Title** Upload fails\n1. Tap Upload <T1>"}

	out, err := NewGenerator(dir, ai).Generate(context.Background(), "Wikimedia Commons", "button is broken")
	require.NoError(t, err)

	assert.Equal(t, "**Title** Upload fails\n1. Tap Upload <"+h+">", out)
	assert.Contains(t, ai.prompt, "T1: (s:S1,t:S2): [act=(1) click, cp=[ty=Button, idx=upload, tx=Upload, dsc=]] weight=4")
	assert.Contains(t, ai.prompt, `"button is broken"`)
}

func TestGenerator_MissingGraph(t *testing.T) {
	ai := &fakeCompleter{reply: "unused"}

	_, err := NewGenerator(t.TempDir(), ai).Generate(context.Background(), "place_holder", "crash")

	var nf *graph.NotFoundError
	assert.ErrorAs(t, err, &nf)
	assert.Empty(t, ai.prompt, "model is not called without a graph")
}

func TestGenerator_AIError(t *testing.T) {
	dir := t.TempDir()
	writeGraph(t, dir, "app")
	boom := errors.New("rate limited")

	_, err := NewGenerator(dir, &fakeCompleter{err: boom}).Generate(context.Background(), "app", "crash")
	assert.ErrorIs(t, err, boom)
}
