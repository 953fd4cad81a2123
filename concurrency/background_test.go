// File: concurrency/background_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package concurrency_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/momentics/hioload-serve/api"
	"github.com/momentics/hioload-serve/concurrency"
)

func waitCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestBackgroundResolvesValue(t *testing.T) {
	bg := concurrency.NewBackground(2)
	defer bg.Close()

	p := bg.Submit(func(ctx context.Context) (any, error) { return 42, nil })
	v, err := p.Wait(waitCtx(t))
	if err != nil {
		t.Fatalf("Wait error: %v", err)
	}
	if v != 42 {
		t.Errorf("Value = %v, want 42", v)
	}
}

func TestBackgroundCapturesFailure(t *testing.T) {
	bg := concurrency.NewBackground(1)
	defer bg.Close()

	boom := errors.New("boom")
	p := bg.Submit(func(ctx context.Context) (any, error) { return nil, boom })
	_, err := p.Wait(waitCtx(t))
	if !errors.Is(err, boom) {
		t.Errorf("Wait error = %v, want boom", err)
	}

	// The failure stays inside the promise; the worker keeps serving.
	p = bg.Submit(func(ctx context.Context) (any, error) { return "ok", nil })
	v, err := p.Wait(waitCtx(t))
	if err != nil || v != "ok" {
		t.Errorf("followup = (%v, %v), want (ok, nil)", v, err)
	}
}

func TestBackgroundCapturesPanic(t *testing.T) {
	bg := concurrency.NewBackground(1)
	defer bg.Close()

	p := bg.Submit(func(ctx context.Context) (any, error) { panic("kaboom") })
	_, err := p.Wait(waitCtx(t))
	if !errors.Is(err, api.ErrBackgroundPanic) {
		t.Fatalf("Wait error = %v, want ErrBackgroundPanic", err)
	}

	done := make(chan struct{})
	bg.Submit(func(ctx context.Context) (any, error) {
		close(done)
		return nil, nil
	})
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("worker died after operation panic")
	}
}

func TestCancelBeforeStart(t *testing.T) {
	bg := concurrency.NewBackground(1)
	defer bg.Close()

	gate := make(chan struct{})
	running := make(chan struct{})
	bg.Submit(func(ctx context.Context) (any, error) {
		close(running)
		<-gate
		return nil, nil
	})
	<-running

	executed := false
	p := bg.Submit(func(ctx context.Context) (any, error) {
		executed = true
		return nil, nil
	})
	p.Cancel()
	close(gate)

	_, err := p.Wait(waitCtx(t))
	if !errors.Is(err, api.ErrCanceled) {
		t.Errorf("canceled promise error = %v, want ErrCanceled", err)
	}
	// Give the worker a chance to (wrongly) pick the canceled op up.
	time.Sleep(20 * time.Millisecond)
	if executed {
		t.Error("operation ran despite pre-start cancellation")
	}
}

func TestCancelAfterStartSignalsContext(t *testing.T) {
	bg := concurrency.NewBackground(1)
	defer bg.Close()

	running := make(chan struct{})
	p := bg.Submit(func(ctx context.Context) (any, error) {
		close(running)
		<-ctx.Done()
		return nil, ctx.Err()
	})
	<-running
	p.Cancel()

	_, err := p.Wait(waitCtx(t))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Wait error = %v, want context.Canceled", err)
	}
}

func TestBackgroundClose(t *testing.T) {
	bg := concurrency.NewBackground(1)
	bg.Close()

	p := bg.Submit(func(ctx context.Context) (any, error) { return 1, nil })
	_, err := p.Wait(waitCtx(t))
	if !errors.Is(err, api.ErrBackgroundClosed) {
		t.Errorf("Submit after Close error = %v, want ErrBackgroundClosed", err)
	}

	// Close is idempotent.
	bg.Close()
}
