package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"go.uber.org/fx"

	"github.com/stitchcraft/stitchcraft/internal/storage/postgres"
)

type fakeApp struct {
	startErr error
	stopErr  error
	done     chan os.Signal
	started  bool
	stopped  bool
}

func (a *fakeApp) Start(context.Context) error {
	a.started = true
	return a.startErr
}

func (a *fakeApp) Stop(context.Context) error {
	a.stopped = true
	return a.stopErr
}

func (a *fakeApp) Done() <-chan os.Signal { return a.done }

func TestRunStopsOnContextCancel(t *testing.T) {
	app := &fakeApp{done: make(chan os.Signal)}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := run(ctx, app); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !app.started || !app.stopped {
		t.Fatalf("expected start and stop, got %+v", app)
	}
}

func TestRunStopsOnShutdownSignal(t *testing.T) {
	app := &fakeApp{done: make(chan os.Signal, 1)}
	app.done <- os.Interrupt

	if err := run(context.Background(), app); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !app.stopped {
		t.Fatal("expected app to be stopped")
	}
}

func TestRunStartFailure(t *testing.T) {
	app := &fakeApp{startErr: errors.New("boom"), done: make(chan os.Signal)}

	err := run(context.Background(), app)
	if err == nil || !strings.Contains(err.Error(), "failed to start application") {
		t.Fatalf("expected start error, got %v", err)
	}
	if app.stopped {
		t.Fatal("stop must not run after a failed start")
	}
}

func TestWithAppJoinsErrors(t *testing.T) {
	app := &fakeApp{stopErr: errors.New("close failed")}
	fnErr := errors.New("create failed")

	err := withApp(context.Background(), app, func() error { return fnErr })
	if !errors.Is(err, fnErr) {
		t.Fatalf("expected fn error in %v", err)
	}
	if !strings.Contains(err.Error(), "failed to stop application") {
		t.Fatalf("expected stop error in %v", err)
	}
}

func TestRunWithFxApp(t *testing.T) {
	var stopped bool
	fxApp := fx.New(
		fx.NopLogger,
		fx.Invoke(func(lc fx.Lifecycle, shutdowner fx.Shutdowner) {
			lc.Append(fx.Hook{
				OnStart: func(context.Context) error { return shutdowner.Shutdown() },
				OnStop: func(context.Context) error {
					stopped = true
					return nil
				},
			})
		}),
	)

	if err := run(context.Background(), fxApp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !stopped {
		t.Fatal("expected stop hooks to run after shutdown")
	}
}

func TestWithAppRunsFnBetweenStartAndStop(t *testing.T) {
	var events []string
	fxApp := fx.New(
		fx.NopLogger,
		fx.Invoke(func(lc fx.Lifecycle) {
			lc.Append(fx.Hook{
				OnStart: func(context.Context) error {
					events = append(events, "start")
					return nil
				},
				OnStop: func(context.Context) error {
					events = append(events, "stop")
					return nil
				},
			})
		}),
	)

	err := withApp(context.Background(), fxApp, func() error {
		events = append(events, "fn")
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.Join(events, ","); got != "start,fn,stop" {
		t.Fatalf("unexpected order %q", got)
	}
}

func TestSchemaCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"schema"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("schema: %v", err)
	}
	if got, want := strings.Count(out.String(), ";\n"), len(postgres.Schema()); got != want {
		t.Fatalf("expected %d statements, got %d", want, got)
	}
}

func TestAdminCreateRequiresEmail(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"admin", "create", "--password", "secret-pass"})

	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "email") {
		t.Fatalf("expected missing email error, got %v", err)
	}
}

func TestRootCommandListsSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range newRootCmd().Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "schema", "admin"} {
		if !names[want] {
			t.Errorf("missing %q command", want)
		}
	}
}
