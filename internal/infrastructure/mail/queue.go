package mail

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"linkpage.backend/pkg/logger"
)

// Queue dispatches emails through a bounded in-memory buffer so request
// handlers never block on SMTP. A full buffer drops the message with a log
// line instead of stalling the caller.
type Queue struct {
	mailer  Mailer
	baseURL string
	ch      chan Message
	stop    chan struct{}
	wg      sync.WaitGroup
}

// NewQueue creates a queue with the given buffer size
func NewQueue(mailer Mailer, baseURL string, size int) *Queue {
	if size <= 0 {
		size = 1
	}
	return &Queue{
		mailer:  mailer,
		baseURL: baseURL,
		ch:      make(chan Message, size),
		stop:    make(chan struct{}),
	}
}

// Start launches the delivery worker. It drains the buffer until Stop is
// called or the context is cancelled.
func (q *Queue) Start(ctx context.Context) {
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case <-q.stop:
				return
			case msg := <-q.ch:
				if err := q.mailer.Send(msg); err != nil {
					logger.Error(ctx, "failed to send email",
						zap.String("to", msg.To),
						zap.String("subject", msg.Subject),
						zap.Error(err))
					continue
				}
				logger.Debug(ctx, "email sent",
					zap.String("to", msg.To),
					zap.String("subject", msg.Subject))
			}
		}
	}()
}

// Stop signals the worker and waits for it to exit
func (q *Queue) Stop() {
	close(q.stop)
	q.wg.Wait()
}

// EnqueueVerification queues an email-verification mail
func (q *Queue) EnqueueVerification(ctx context.Context, to, token string) {
	q.enqueue(ctx, BuildVerificationMessage(q.baseURL, to, token))
}

// EnqueuePasswordReset queues a password-reset mail
func (q *Queue) EnqueuePasswordReset(ctx context.Context, to, token string) {
	q.enqueue(ctx, BuildPasswordResetMessage(q.baseURL, to, token))
}

func (q *Queue) enqueue(ctx context.Context, msg Message) {
	select {
	case q.ch <- msg:
	default:
		logger.Warn(ctx, "mail queue full, dropping message",
			zap.String("to", msg.To),
			zap.String("subject", msg.Subject))
	}
}
