// Package task runs long computations in the background and reports their
// progress and outcome as messages on a channel.
package task

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrCancelled is the cancellation cause of Task.Cancel
var ErrCancelled = errors.New("task cancelled")

// Kind tags a task message
type Kind string

const (
	KindProgress Kind = "progress"
	KindSuccess  Kind = "success"
	KindError    Kind = "error"
)

// Message is emitted by a running task. Progress and Success carry Data,
// Error carries Err. Success and Error are terminal.
type Message[T any] struct {
	Kind   Kind
	TaskID uuid.UUID
	Data   T
	Err    error
}

// Terminal reports whether no message follows this one
func (m Message[T]) Terminal() bool {
	return m.Kind == KindSuccess || m.Kind == KindError
}

// Func is the body of a task. It reports intermediate values through report
// and must return once ctx is done.
type Func[T any] func(ctx context.Context, report func(T)) (T, error)

// Task is a cancelable background computation
type Task[T any] struct {
	ID       uuid.UUID
	Name     string
	messages chan Message[T]
	cancel   context.CancelCauseFunc
	logger   *zap.Logger

	// outcome of fn, readable once messages is closed
	result T
	err    error
}

// Start runs fn in its own goroutine. The message channel is closed after the
// terminal message. A cancelled task always exits, even when nobody reads its
// messages; an uncancelled task blocks once its buffer is full.
func Start[T any](ctx context.Context, name string, logger *zap.Logger, fn Func[T]) *Task[T] {
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancelCause(ctx)
	t := &Task[T]{
		ID:       uuid.New(),
		Name:     name,
		messages: make(chan Message[T], 16),
		cancel:   cancel,
	}
	t.logger = logger.With(zap.String("task", name), zap.Stringer("task_id", t.ID))

	go t.run(ctx, fn)
	return t
}

func (t *Task[T]) run(ctx context.Context, fn Func[T]) {
	defer close(t.messages)
	defer t.cancel(nil)

	t.logger.Debug("task started")

	report := func(data T) {
		select {
		case t.messages <- Message[T]{Kind: KindProgress, TaskID: t.ID, Data: data}:
		case <-ctx.Done():
		}
	}

	result, err := fn(ctx, report)
	t.result, t.err = result, err

	msg := Message[T]{Kind: KindSuccess, TaskID: t.ID, Data: result}
	if err != nil {
		t.logger.Debug("task failed", zap.Error(err))
		msg = Message[T]{Kind: KindError, TaskID: t.ID, Data: result, Err: err}
	} else {
		t.logger.Debug("task finished")
	}
	t.finish(ctx, msg)
}

// finish sends the terminal message. Once the task is cancelled a full
// buffer means the reader is gone, so the message is dropped and the
// outcome stays available through Wait.
func (t *Task[T]) finish(ctx context.Context, msg Message[T]) {
	select {
	case t.messages <- msg:
	case <-ctx.Done():
		select {
		case t.messages <- msg:
		default:
			t.logger.Debug("terminal message dropped, buffer full")
		}
	}
}

// Messages returns the channel of task messages
func (t *Task[T]) Messages() <-chan Message[T] {
	return t.messages
}

// Cancel stops the task. It is safe to call more than once.
func (t *Task[T]) Cancel() {
	t.cancel(ErrCancelled)
}

// Wait drains the messages and returns the outcome. Progress messages are
// passed to onProgress when it is not nil.
func (t *Task[T]) Wait(onProgress func(T)) (T, error) {
	for msg := range t.messages {
		switch msg.Kind {
		case KindProgress:
			if onProgress != nil {
				onProgress(msg.Data)
			}
		case KindSuccess:
			return msg.Data, nil
		case KindError:
			return msg.Data, msg.Err
		}
	}
	return t.result, t.err
}
