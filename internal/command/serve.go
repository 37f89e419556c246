package command

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	adapthttp "tracker/internal/adapter/http"
	"tracker/internal/adapter/oidc"
	"tracker/internal/adapter/postgres"
	"tracker/internal/app"
	"tracker/internal/auth"
	"tracker/internal/config"
	"tracker/internal/observability"
)

// Server timeouts.
const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 15 * time.Second
	writeTimeout      = 15 * time.Second
	shutdownTimeout   = 10 * time.Second
)

func serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tracker HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (runErr error) {
			cfg, err := configFrom(cmd.Context())
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			logger := slog.Default()

			db, err := postgres.Open(cmd.Context(), cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer func() {
				if err := db.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			handler, err := buildHandler(cmd.Context(), cfg, logger, db)
			if err != nil {
				return err
			}

			var lc net.ListenConfig
			listener, err := lc.Listen(cmd.Context(), "tcp", cfg.Addr)
			if err != nil {
				return err
			}

			grp, ctx := errgroup.WithContext(cmd.Context())
			srv := &http.Server{
				Handler:           handler,
				ReadHeaderTimeout: readHeaderTimeout,
				ReadTimeout:       readTimeout,
				WriteTimeout:      writeTimeout,
			}

			logger.InfoContext(ctx, "starting http server...", slog.String("address", listener.Addr().String()))
			serve(ctx, grp, srv, listener)
			return grp.Wait()
		},
	}

	cmd.Flags().String("addr", ":8080", "listen address")
	cmd.Flags().String("secret", "", "token signing secret")
	cmd.Flags().Bool("cookie-secure", false, "mark the session cookie Secure")
	return cmd
}

// buildHandler wires the auth core, services and optional SSO to the store.
func buildHandler(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *postgres.DB) (http.Handler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	codec, err := auth.NewTokenCodec(cfg.Secret)
	if err != nil {
		return nil, err
	}
	hasher := auth.NewArgon2Hasher(cfg.Argon2.Params())

	var sso adapthttp.SSOProvider
	if cfg.OIDC.Enabled() {
		provider, err := oidc.New(ctx, oidc.Config{
			Issuer:       cfg.OIDC.Issuer,
			ClientID:     cfg.OIDC.ClientID,
			ClientSecret: cfg.OIDC.ClientSecret,
			RedirectURL:  cfg.OIDC.RedirectURL,
		})
		if err != nil {
			return nil, err
		}
		sso = provider
		logger.InfoContext(ctx, "single sign-on enabled", slog.String("issuer", cfg.OIDC.Issuer))
	}

	s := adapthttp.New(adapthttp.Deps{
		Auth:         app.NewAuthService(db, hasher, codec),
		Projects:     app.NewProjectService(db, db),
		Tasks:        app.NewTaskService(db, db),
		Tokens:       codec,
		SSO:          sso,
		Health:       db.Ping,
		Logger:       logger,
		Metrics:      observability.NewMetrics(),
		CookieSecure: cfg.CookieSecure,
	})
	return s.Handler(), nil
}

// serve runs srv on listener and shuts it down gracefully once ctx is done.
func serve(ctx context.Context, grp *errgroup.Group, srv *http.Server, listener net.Listener) {
	grp.Go(func() error {
		err := srv.Serve(listener)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	grp.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		slog.InfoContext(shutdownCtx, "shutting down http server")
		return srv.Shutdown(shutdownCtx)
	})
}
