// Mock JWT Pizza backend
//
// mockapi serves the fixture session of one user over plain HTTP so the
// storefront can be clicked through without the real service:
//
//	mockapi --addr :3000 --role franchisee --franchise "MY FRANCHISE"
//	VITE_PIZZA_SERVICE_URL=http://localhost:3000 npm run dev
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/thesyncim/pizzae2e/cmd/mockapi/server"
	"github.com/thesyncim/pizzae2e/pkg/config"
	"github.com/thesyncim/pizzae2e/pkg/fixtures"
	"github.com/thesyncim/pizzae2e/pkg/mockroute"
)

const shutdownTimeout = 5 * time.Second

// options are the resolved command line settings.
type options struct {
	Addr        string
	Role        fixtures.Role
	Creds       fixtures.Credentials
	Franchise   string
	Stores      []string
	AllowOrigin string
	Debug       bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:           "mockapi",
		Short:         "Serve a mocked JWT Pizza backend",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := resolveOptions(v)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, opts)
		},
	}
	registerFlags(cmd.Flags())

	v.SetEnvPrefix(config.EnvPrefix + "_MOCKAPI")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		panic(err)
	}
	return cmd
}

func registerFlags(flags *pflag.FlagSet) {
	flags.String("addr", ":3000", "Listen address (\":0\" picks a random port)")
	flags.String("role", string(fixtures.Diner), "Role of the logged in user: diner, franchisee or admin")
	flags.String("email", "", "Login email (default: the role's seeded account, d@jwt.com for diners)")
	flags.String("password", "", "Login password (default: the role's seeded account)")
	flags.String("franchise", fixtures.DefaultFranchiseName, "Franchise owned by franchisees and listed for admins")
	flags.StringSlice("store", []string{"Lehi"}, "Stores of the franchise (repeatable)")
	flags.String("allow-origin", "*", "Access-Control-Allow-Origin value")
	flags.Bool("debug", false, "Log every intercepted request")
}

func resolveOptions(v *viper.Viper) (options, error) {
	role, ok := fixtures.ParseRole(strings.ToLower(v.GetString("role")))
	if !ok {
		return options{}, fmt.Errorf("unknown role %q", v.GetString("role"))
	}

	creds := fixtures.CredentialsFor(role)
	if role == fixtures.Diner {
		creds.Email = fixtures.DinerEmail
	}
	if email := v.GetString("email"); email != "" {
		creds.Email = email
	}
	if password := v.GetString("password"); password != "" {
		creds.Password = password
	}

	franchise := strings.TrimSpace(v.GetString("franchise"))
	if franchise == "" {
		return options{}, fmt.Errorf("franchise name must not be empty")
	}

	return options{
		Addr:        v.GetString("addr"),
		Role:        role,
		Creds:       creds,
		Franchise:   franchise,
		Stores:      v.GetStringSlice("store"),
		AllowOrigin: v.GetString("allow-origin"),
		Debug:       v.GetBool("debug"),
	}, nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// buildRoutes installs the session of opts into a fresh registrar.
func buildRoutes(opts options, logger *zap.Logger) (*mockroute.Registrar, error) {
	routes := mockroute.New(mockroute.WithLogger(logger))
	f := fixtures.NewFranchise(opts.Franchise, opts.Stores...)
	if err := routes.Install(fixtures.Session(opts.Role, opts.Creds, f)...); err != nil {
		routes.Close()
		return nil, fmt.Errorf("install session: %w", err)
	}
	return routes, nil
}

func run(ctx context.Context, opts options) error {
	logger, err := newLogger(opts.Debug)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	routes, err := buildRoutes(opts, logger)
	if err != nil {
		return err
	}
	defer routes.Close()

	cfg := server.DefaultConfig()
	cfg.Addr = opts.Addr
	cfg.AllowOrigin = opts.AllowOrigin
	srv, err := server.NewServer(cfg, routes, logger)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	addr, err := srv.Start()
	if err != nil {
		return fmt.Errorf("start server: %w", err)
	}
	logger.Info("serving mock session",
		zap.String("addr", addr),
		zap.String("role", string(opts.Role)),
		zap.String("email", opts.Creds.Email),
		zap.String("franchise", opts.Franchise))

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
