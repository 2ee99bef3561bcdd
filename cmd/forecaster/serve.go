package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/abhinavsaxena123/Customer-Complaints-Forecasting/internal/dashboard"
	"github.com/abhinavsaxena123/Customer-Complaints-Forecasting/internal/metrics"
	"github.com/abhinavsaxena123/Customer-Complaints-Forecasting/internal/telemetry"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func serveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the interactive forecast dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := a.newEngine()
			if err != nil {
				return err
			}

			tp, shutdownTracing, err := telemetry.Init(a.cfg.Telemetry.Enabled, a.cfg.Telemetry.ServiceName, nil)
			if err != nil {
				return err
			}
			defer func() {
				if err := shutdownTracing(context.Background()); err != nil {
					a.logger.WithError(err).Error("unable to flush traces")
				}
			}()

			m := metrics.New(nil)
			opt := dashboard.NewDefaultOptions()
			opt.DefaultRangeDays = a.cfg.Dashboard.DefaultRangeDays
			opt.ServiceName = a.cfg.Telemetry.ServiceName

			svc, err := dashboard.NewService(engine, a.cfg.Cache.Size, m, tp, a.logger, opt)
			if err != nil {
				return err
			}

			gin.SetMode(gin.ReleaseMode)
			router, err := dashboard.NewRouter(svc, tp, m.Handler())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := dashboard.NewServer(a.cfg.Server.Port, router, a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.logger)
			return srv.Run(ctx)
		},
	}

	cmd.Flags().Int("port", 0, "listen port")
	if err := a.v.BindPFlag("server.port", cmd.Flags().Lookup("port")); err != nil {
		panic(err)
	}
	return cmd
}
