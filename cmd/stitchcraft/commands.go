package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/stitchcraft/stitchcraft/internal/app"
	"github.com/stitchcraft/stitchcraft/internal/config"
	"github.com/stitchcraft/stitchcraft/internal/di"
	"github.com/stitchcraft/stitchcraft/internal/storage/postgres"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "stitchcraft",
		Short:         "StitchCraft - order, payment and client tracking for tailors",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(serveCmd(), schemaCmd(), adminCmd())
	return root
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve [flags]",
		Short: "Run the HTTP API and the checkout reconciler",
		Long: `Run the HTTP API and the checkout reconciler.

Flags and environment variables:
  -a RUN_ADDRESS            listen address (default :8080)
  -d DATABASE_URI           PostgreSQL DSN (required)
     PAYSTACK_SECRET_KEY    provider secret, or PAYSTACK_SECRET_KEY_FILE (required)
     SESSION_SECRET         session signing key, or SESSION_SECRET_FILE
     AMQP_URL               RabbitMQ URL, events are dropped when empty`,
		// config owns flag parsing so flags and environment share one loader.
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			fxApp := fx.New(
				fx.Provide(func() context.Context { return ctx }),
				fx.Supply(config.Args(args)),
				di.Module(),
			)
			return run(ctx, fxApp)
		},
	}
}

func schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the PostgreSQL schema applied at startup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeSchema(cmd.OutOrStdout())
		},
	}
}

func writeSchema(w io.Writer) error {
	for _, stmt := range postgres.Schema() {
		if _, err := fmt.Fprintf(w, "%s;\n\n", strings.TrimSpace(stmt)); err != nil {
			return err
		}
	}
	return nil
}

func adminCmd() *cobra.Command {
	admin := &cobra.Command{
		Use:   "admin",
		Short: "Platform administration",
	}

	var email, name, password string
	create := &cobra.Command{
		Use:     "create",
		Short:   "Create a platform administrator",
		Example: `  stitchcraft admin create --email ops@example.com --name "Ops" --password 's3cret-pass'`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var facade *app.StudioFacade
			fxApp := fx.New(
				fx.Provide(func() context.Context { return ctx }),
				fx.Supply(config.Args(nil)),
				di.Core(),
				fx.Populate(&facade),
			)
			return withApp(ctx, fxApp, func() error {
				user, err := facade.CreateAdmin(ctx, email, name, password)
				if err != nil {
					return fmt.Errorf("create admin: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "admin %s created with id %d\n", user.Email, user.ID)
				return nil
			})
		},
	}
	create.Flags().StringVar(&email, "email", "", "admin email")
	create.Flags().StringVar(&name, "name", "", "admin display name")
	create.Flags().StringVar(&password, "password", "", "admin password")
	_ = create.MarkFlagRequired("email")
	_ = create.MarkFlagRequired("password")

	admin.AddCommand(create)
	return admin
}
