package task

import (
	"context"
	"errors"
	"runtime"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
)

func TestTaskSuccess(t *testing.T) {
	task := Start(context.Background(), "count", zaptest.NewLogger(t), func(ctx context.Context, report func(int)) (int, error) {
		for i := 1; i <= 3; i++ {
			report(i)
		}
		return 10, nil
	})

	var kinds []Kind
	var progress []int
	for msg := range task.Messages() {
		if msg.TaskID != task.ID {
			t.Errorf("message carries task id %v, want %v", msg.TaskID, task.ID)
		}
		kinds = append(kinds, msg.Kind)
		if msg.Terminal() != (msg.Kind == KindSuccess) {
			t.Errorf("%s message: Terminal() = %v", msg.Kind, msg.Terminal())
		}
		if msg.Kind == KindProgress {
			progress = append(progress, msg.Data)
		}
		if msg.Kind == KindSuccess && msg.Data != 10 {
			t.Errorf("expected result 10, got %d", msg.Data)
		}
	}

	want := []Kind{KindProgress, KindProgress, KindProgress, KindSuccess}
	if len(kinds) != len(want) {
		t.Fatalf("got kinds %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("message %d: got %s, want %s", i, kinds[i], want[i])
		}
	}
	if progress[0] != 1 || progress[2] != 3 {
		t.Errorf("progress out of order: %v", progress)
	}
}

func TestTaskError(t *testing.T) {
	boom := errors.New("boom")
	task := Start(context.Background(), "fail", nil, func(ctx context.Context, report func(string)) (string, error) {
		return "partial", boom
	})

	result, err := task.Wait(nil)
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if result != "partial" {
		t.Errorf("expected partial result, got %q", result)
	}
}

func TestTaskCancel(t *testing.T) {
	started := make(chan struct{})
	task := Start(context.Background(), "block", zaptest.NewLogger(t), func(ctx context.Context, report func(int)) (int, error) {
		close(started)
		<-ctx.Done()
		return 0, context.Cause(ctx)
	})

	<-started
	task.Cancel()
	task.Cancel()

	done := make(chan error, 1)
	go func() {
		_, err := task.Wait(nil)
		done <- err
	}()

	select {
	case err := <-done:
		if !errors.Is(err, ErrCancelled) {
			t.Errorf("expected ErrCancelled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("task did not stop after Cancel")
	}
}

func TestTaskCancelWithoutReader(t *testing.T) {
	before := runtime.NumGoroutine()

	tasks := make([]*Task[int], 10)
	for i := range tasks {
		tasks[i] = Start(context.Background(), "unread", nil, func(ctx context.Context, report func(int)) (int, error) {
			for i := 0; i < 32; i++ {
				report(i)
			}
			return 32, context.Cause(ctx)
		})
	}
	for _, task := range tasks {
		task.Cancel()
	}

	deadline := time.Now().Add(5 * time.Second)
	for runtime.NumGoroutine() > before {
		if time.Now().After(deadline) {
			t.Fatalf("task goroutines still running: before=%d after=%d", before, runtime.NumGoroutine())
		}
		time.Sleep(10 * time.Millisecond)
	}

	// the outcome survives a dropped terminal message
	result, err := tasks[0].Wait(nil)
	if !errors.Is(err, ErrCancelled) {
		t.Errorf("expected ErrCancelled, got %v", err)
	}
	if result != 32 {
		t.Errorf("expected result 32, got %d", result)
	}
}

func TestTaskParentContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	task := Start(ctx, "parent", nil, func(ctx context.Context, report func(int)) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})
	cancel()

	if _, err := task.Wait(nil); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestTaskWaitProgress(t *testing.T) {
	task := Start(context.Background(), "progress", nil, func(ctx context.Context, report func(int)) (int, error) {
		for i := 0; i < 100; i++ {
			report(i)
		}
		return 100, nil
	})

	last := -1
	result, err := task.Wait(func(v int) {
		if v <= last {
			t.Errorf("progress went from %d to %d", last, v)
		}
		last = v
	})
	if err != nil || result != 100 {
		t.Fatalf("got %d, %v", result, err)
	}
	if last != 99 {
		t.Errorf("expected every progress message, last was %d", last)
	}
}

func TestTaskIDsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		task := Start(context.Background(), "id", nil, func(ctx context.Context, report func(int)) (int, error) {
			return 0, nil
		})
		if _, err := task.Wait(nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		id := task.ID.String()
		if seen[id] {
			t.Fatalf("duplicate task id %s", id)
		}
		seen[id] = true
	}
}
