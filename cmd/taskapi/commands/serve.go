package commands

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/ncobase/taskapi/config"
	"github.com/ncobase/taskapi/data/repository"
	"github.com/ncobase/taskapi/internal/server"
	"github.com/ncobase/taskapi/logging/observes"
	"github.com/ncobase/taskapi/security/jwt"
	"github.com/ncobase/taskapi/service"
	"github.com/ncobase/taskapi/version"

	"github.com/spf13/cobra"
)

// errNoSecret stops startup when tokens could not be signed.
var errNoSecret = errors.New("auth.jwt.secret (AUTH_JWT_SECRET) is required")

// NewServeCommand creates the serve command.
func NewServeCommand(confPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, *confPath)
		},
	}
}

func serve(ctx context.Context, confPath string) error {
	rt, err := bootstrap(ctx, confPath)
	if err != nil {
		return err
	}
	defer rt.close()
	cfg, log := rt.cfg, rt.logger

	if cfg.Auth.JWT.Secret == "" {
		return errNoSecret
	}

	info := version.GetVersionInfo()
	sc := cfg.Observes.Sentry
	flush, err := observes.NewSentry(&observes.SentryOptions{
		Dsn:         sc.Endpoint,
		Name:        cfg.AppName,
		Release:     firstNonEmpty(sc.Release, info.Version),
		Environment: firstNonEmpty(sc.Environment, cfg.RunMode),
		SampleRate:  sc.SampleRate,
	})
	if err != nil {
		log.Warn(ctx, "sentry disabled", "error", err)
	} else {
		defer flush()
		log.AddHook(observes.NewSentryHook())
	}

	tc := cfg.Observes.Tracer
	shutdownTracer, err := observes.NewTracer(&observes.TracerOption{
		URL:           tc.Endpoint,
		Insecure:      tc.Insecure,
		Headers:       tc.Headers,
		Name:          tc.ServiceName,
		Version:       firstNonEmpty(tc.ServiceVersion, info.Version),
		Environment:   firstNonEmpty(tc.Environment, cfg.RunMode),
		SamplingRate:  tc.SamplingRate,
		BatchTimeout:  tc.BatchTimeout,
		ExportTimeout: tc.ExportTimeout,
	})
	if err != nil {
		log.Warn(ctx, "tracing disabled", "error", err)
	} else {
		defer func() {
			if err := shutdownTracer(context.Background()); err != nil {
				log.Warn(context.Background(), "tracer shutdown failed", "error", err)
			}
		}()
	}

	if cfg.Data.Database.Migrate {
		if err := rt.data.Migrate(ctx); err != nil {
			return err
		}
		log.Info(ctx, "database schema up to date")
	}

	config.Watch(cfg, func(c *config.Config) {
		log.SetLevelFromConfig(c.Logger)
		log.Info(context.Background(), "configuration reloaded")
	})

	tm := jwt.NewTokenManager(cfg.Auth.JWT.Secret, cfg.Auth.JWT.Expire)
	svc := service.New(repository.New(rt.data, log), tm, log)

	log.Info(ctx, "starting taskapi", "version", info.Version, "revision", info.Revision, "driver", rt.data.Dialect)
	return server.New(cfg, log, rt.data, svc).Run(ctx)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
