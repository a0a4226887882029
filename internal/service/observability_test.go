package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/coveyrise/steward/internal/playbook"
	"github.com/coveyrise/steward/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogUseCaseObserver_InfoOnSuccess(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:     "import-reference",
		Duration: 12 * time.Millisecond,
		Fields:   map[string]any{"programs": 2},
	})

	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "op=import-reference")
	assert.Contains(t, out, "programs=2")
	assert.NotContains(t, out, "unresolved")
}

func TestLogUseCaseObserver_ErrorOnFailure(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name: "apply-playbook",
		Err:  errors.New("reference unavailable"),
	})

	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, `error="reference unavailable"`)
}

func TestLogUseCaseObserver_WarnOnUnresolvedPractices(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:       "apply-playbook",
		Unresolved: 2,
	})

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "unresolved=2")
}

func TestNewLogUseCaseObserver_NilWriterIsNoop(t *testing.T) {
	obs := NewLogUseCaseObserver(nil)
	assert.IsType(t, NoopUseCaseObserver{}, obs)
}

func TestUseCaseEvent_Success(t *testing.T) {
	assert.True(t, UseCaseEvent{Unresolved: 1}.Success())
	assert.False(t, UseCaseEvent{Err: errors.New("boom")}.Success())
}

// Applying against an empty funding reference should complete but flag the
// unmatched practices in the telemetry stream.
func TestApply_EmitsUnresolvedTelemetry(t *testing.T) {
	r := setupRepos(t)
	proj := testutil.NewTestProject("Quail Ridge")
	require.NoError(t, r.projects.Create(context.Background(), proj))

	var buf bytes.Buffer
	svc := NewPlaybookService(playbook.DefaultCatalog(), r.projects, r.tasks, r.practices, r.funding,
		NewLogUseCaseObserver(&buf))

	result, err := svc.Apply(context.Background(), proj.ID, "upland-habitat")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Unresolved)

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "op=apply-playbook")
	assert.Contains(t, out, "unresolved=2")
	assert.Contains(t, out, "task_count=5")
}
