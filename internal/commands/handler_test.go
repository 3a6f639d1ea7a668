package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

type pingMessage struct {
	ResourceID string
}

func (pingMessage) Type() string { return "remotemedia.test.ping" }

func (m pingMessage) Validate() error {
	if m.ResourceID == "" {
		return errors.New("resource id required")
	}
	return nil
}

func TestHandlerExecuteSuccess(t *testing.T) {
	called := false
	h := NewHandler(func(ctx context.Context, msg pingMessage) error {
		called = true
		return nil
	})

	if err := h.Execute(context.Background(), pingMessage{ResourceID: "books/cover"}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !called {
		t.Fatal("expected handler to be invoked")
	}
}

func TestHandlerValidationShortCircuitsExecution(t *testing.T) {
	called := false
	h := NewHandler(func(ctx context.Context, msg pingMessage) error {
		called = true
		return nil
	})

	err := h.Execute(context.Background(), pingMessage{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when validation fails")
	}
}

func TestHandlerContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	h := NewHandler(func(ctx context.Context, msg pingMessage) error {
		called = true
		return nil
	})

	err := h.Execute(ctx, pingMessage{ResourceID: "a"})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	var rich *goerrors.Error
	if !errors.As(err, &rich) || rich.TextCode != commandContextCanceled {
		t.Fatalf("expected %s text code, got %v", commandContextCanceled, err)
	}
	if called {
		t.Fatal("expected handler not to run when context is cancelled")
	}
}

func TestHandlerWrapsExecutionError(t *testing.T) {
	h := NewHandler(func(ctx context.Context, msg pingMessage) error {
		return errors.New("boom")
	})

	err := h.Execute(context.Background(), pingMessage{ResourceID: "a"})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestHandlerKeepsCategorisedErrors(t *testing.T) {
	source := goerrors.New("gateway down", goerrors.CategoryExternal)
	h := NewHandler(func(ctx context.Context, msg pingMessage) error {
		return source
	})

	err := h.Execute(context.Background(), pingMessage{ResourceID: "a"})
	if !goerrors.IsCategory(err, goerrors.CategoryExternal) {
		t.Fatalf("expected external category to survive, got %v", err)
	}
}

func TestHandlerHonoursTimeoutOption(t *testing.T) {
	h := NewHandler(func(ctx context.Context, msg pingMessage) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(50 * time.Millisecond):
			return nil
		}
	}, WithTimeout[pingMessage](5*time.Millisecond))

	err := h.Execute(context.Background(), pingMessage{ResourceID: "a"})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category for timeout, got %v", err)
	}
}

func TestHandlerReportsTelemetry(t *testing.T) {
	var got []TelemetryInfo
	h := NewHandler(func(ctx context.Context, msg pingMessage) error {
		if msg.ResourceID == "fail" {
			return errors.New("boom")
		}
		return nil
	},
		WithOperation[pingMessage]("resource.ping"),
		WithTelemetry(func(_ context.Context, _ pingMessage, info TelemetryInfo) {
			got = append(got, info)
		}),
	)

	_ = h.Execute(context.Background(), pingMessage{ResourceID: "ok"})
	_ = h.Execute(context.Background(), pingMessage{ResourceID: "fail"})

	if len(got) != 2 {
		t.Fatalf("expected two telemetry calls, got %d", len(got))
	}
	if got[0].Status != TelemetryStatusSuccess || got[0].Command != "remotemedia.test.ping" || got[0].Operation != "resource.ping" {
		t.Fatalf("unexpected success telemetry: %+v", got[0])
	}
	if got[1].Status != TelemetryStatusFailed || got[1].Error == nil {
		t.Fatalf("unexpected failure telemetry: %+v", got[1])
	}
}

func TestCommandLoggerScopesModule(t *testing.T) {
	if CommandLogger(nil, "") == nil {
		t.Fatal("expected a usable logger without a provider")
	}
	if EnsureLogger(nil) == nil {
		t.Fatal("expected no-op logger")
	}
}

func TestCommandContext(t *testing.T) {
	ctx, cancel := commandContext(nil, 0)
	if ctx == nil {
		t.Fatal("expected a context for a nil parent")
	}
	if _, ok := ctx.Deadline(); ok {
		t.Fatal("expected no deadline without a timeout")
	}
	cancel()
	if ctx.Err() == nil {
		t.Fatal("expected cancel to end the context")
	}

	ctx, cancel = commandContext(context.Background(), time.Minute)
	defer cancel()
	if _, ok := ctx.Deadline(); !ok {
		t.Fatal("expected a deadline with a timeout")
	}
}

func TestStatusFor(t *testing.T) {
	if got := statusFor(context.Background(), nil); got != TelemetryStatusSuccess {
		t.Fatalf("expected success, got %s", got)
	}
	if got := statusFor(context.Background(), errors.New("boom")); got != TelemetryStatusFailed {
		t.Fatalf("expected failed, got %s", got)
	}
	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	if got := statusFor(canceled, nil); got != TelemetryStatusContextError {
		t.Fatalf("expected context error, got %s", got)
	}
}
