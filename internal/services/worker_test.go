package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"alfredoptarigan/resume-analyzer/internal/models"
)

type recordingAnalyzer struct {
	mu   sync.Mutex
	seen []uuid.UUID
	done chan uuid.UUID
}

func (r *recordingAnalyzer) AnalyzeResume(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	r.seen = append(r.seen, id)
	r.mu.Unlock()
	select {
	case r.done <- id:
	default:
	}
	return nil
}

func TestWorker_ProcessesEnqueuedJobs(t *testing.T) {
	analyzer := &recordingAnalyzer{done: make(chan uuid.UUID, 10)}
	w := NewWorker(newFakeAnalysisRepo(), analyzer, 2, time.Hour, zaptest.NewLogger(t))
	w.Start(context.Background())
	defer w.Stop()

	id := uuid.New()
	w.EnqueueJob(id)

	select {
	case got := <-analyzer.done:
		assert.Equal(t, id, got)
	case <-time.After(5 * time.Second):
		t.Fatal("job was not processed")
	}
}

func TestWorker_PollsPendingJobs(t *testing.T) {
	repo := newFakeAnalysisRepo()
	id := uuid.New()
	require.NoError(t, repo.Create(&models.Analysis{ID: id, Status: models.StatusQueued}))

	analyzer := &recordingAnalyzer{done: make(chan uuid.UUID, 10)}
	w := NewWorker(repo, analyzer, 1, 10*time.Millisecond, zaptest.NewLogger(t))
	w.Start(context.Background())
	defer w.Stop()

	select {
	case got := <-analyzer.done:
		assert.Equal(t, id, got)
	case <-time.After(5 * time.Second):
		t.Fatal("pending job was not picked up")
	}
}

func TestWorker_StopIsIdempotent(t *testing.T) {
	w := NewWorker(newFakeAnalysisRepo(), &recordingAnalyzer{done: make(chan uuid.UUID, 1)}, 1, time.Hour, zaptest.NewLogger(t))
	w.Start(context.Background())
	w.Stop()
	w.Stop()
}
