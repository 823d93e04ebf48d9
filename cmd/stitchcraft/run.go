package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

type lifecycle interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Done() <-chan os.Signal
}

// run starts the app and blocks until ctx ends or the app asks to shut down.
func run(ctx context.Context, app lifecycle) error {
	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("failed to start application: %w", err)
	}

	select {
	case <-ctx.Done():
	case <-app.Done():
	}

	if err := app.Stop(context.WithoutCancel(ctx)); err != nil {
		return fmt.Errorf("failed to stop application: %w", err)
	}
	return nil
}

// withApp starts the app, runs fn and always stops the app afterwards.
func withApp(ctx context.Context, app lifecycle, fn func() error) error {
	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("failed to start application: %w", err)
	}
	err := fn()
	if stopErr := app.Stop(context.WithoutCancel(ctx)); stopErr != nil {
		err = errors.Join(err, fmt.Errorf("failed to stop application: %w", stopErr))
	}
	return err
}
