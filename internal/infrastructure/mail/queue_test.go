package mail

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"linkpage.backend/pkg/logger"
)

// recordingMailer captures sent messages instead of hitting SMTP.
type recordingMailer struct {
	mu       sync.Mutex
	sent     []Message
	attempts int
	err      error
}

func (m *recordingMailer) Send(msg Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts++
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *recordingMailer) attemptCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.attempts
}

func (m *recordingMailer) messages() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Message, len(m.sent))
	copy(out, m.sent)
	return out
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestQueue_DeliversEnqueuedMail(t *testing.T) {
	logger.Init("development")
	rec := &recordingMailer{}
	q := NewQueue(rec, "https://app.example.com", 10)
	q.Start(context.Background())
	defer q.Stop()

	q.EnqueueVerification(context.Background(), "a@example.com", "tok-a")
	q.EnqueuePasswordReset(context.Background(), "b@example.com", "tok-b")

	waitFor(t, func() bool { return len(rec.messages()) == 2 })

	msgs := rec.messages()
	assert.Equal(t, "a@example.com", msgs[0].To)
	assert.Contains(t, msgs[0].Body, "verify-email?token=tok-a")
	assert.Equal(t, "b@example.com", msgs[1].To)
	assert.Contains(t, msgs[1].Body, "reset-password?token=tok-b")
}

func TestQueue_DropsWhenFull(t *testing.T) {
	logger.Init("development")
	rec := &recordingMailer{}
	q := NewQueue(rec, "https://app.example.com", 1)
	// worker not started, so the buffer never drains

	q.EnqueueVerification(context.Background(), "a@example.com", "kept")
	q.EnqueueVerification(context.Background(), "b@example.com", "dropped")

	q.Start(context.Background())
	defer q.Stop()

	waitFor(t, func() bool { return len(rec.messages()) == 1 })
	assert.Contains(t, rec.messages()[0].Body, "token=kept")
}

func TestQueue_KeepsGoingAfterSendFailure(t *testing.T) {
	logger.Init("development")
	rec := &recordingMailer{err: errors.New("smtp down")}
	q := NewQueue(rec, "https://app.example.com", 10)
	q.Start(context.Background())
	defer q.Stop()

	q.EnqueueVerification(context.Background(), "a@example.com", "fails")
	waitFor(t, func() bool { return rec.attemptCount() == 1 })

	// flip the mailer back to healthy and confirm the worker still runs
	rec.mu.Lock()
	rec.err = nil
	rec.mu.Unlock()

	q.EnqueueVerification(context.Background(), "b@example.com", "succeeds")
	waitFor(t, func() bool { return len(rec.messages()) == 1 })
	assert.Equal(t, "b@example.com", rec.messages()[0].To)
}

func TestQueue_StopWaitsForWorker(t *testing.T) {
	logger.Init("development")
	rec := &recordingMailer{}
	q := NewQueue(rec, "https://app.example.com", 0) // size clamps to 1
	q.Start(context.Background())

	done := make(chan struct{})
	go func() {
		q.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}
	require.Empty(t, rec.messages())
}
