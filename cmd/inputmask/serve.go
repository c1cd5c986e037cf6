package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-inputmask/components/maskapi"
	"github.com/goliatone/go-inputmask/pkg/presets"
)

func newServeCmd(g *globalFlags) *cobra.Command {
	var (
		listen   string
		basePath string
		watch    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the conform and presets endpoints with /metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := presets.NewRegistry(presets.WithLogger(g.logger))
			return runServer(cmd.Context(), g, reg, listen, basePath, watch)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", ":8080", "Listen address")
	cmd.Flags().StringVar(&basePath, "base-path", "/", "Path prefix for the mask routes")
	cmd.Flags().BoolVar(&watch, "watch", false, "Reload --presets-dir when its documents change")
	return cmd
}

func runServer(ctx context.Context, g *globalFlags, reg *presets.Registry, listen, basePath string, watch bool) error {
	signalCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if g.presetsDir != "" {
		store, err := presets.LoadFS(os.DirFS(g.presetsDir))
		if err != nil {
			return err
		}
		reg.Replace(store)
		if watch {
			go func() {
				if err := presets.Watch(signalCtx, g.presetsDir, reg, g.logger); err != nil {
					g.logger.Error("presets watcher stopped", zap.Error(err))
				}
			}()
		}
	}

	metricsReg := prometheus.NewRegistry()
	metricsReg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	mux := http.NewServeMux()
	prefix, err := maskapi.New(
		maskapi.WithPresets(reg),
		maskapi.WithRegisterer(metricsReg),
		maskapi.WithLogger(g.logger),
	).RegisterRoutes(mux, basePath)
	if err != nil {
		return err
	}
	mux.Handle("/metrics", promhttp.HandlerFor(metricsReg, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              listen,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.ListenAndServe()
	}()
	g.logger.Info("serving", zap.String("listen", listen), zap.String("routes", prefix))

	select {
	case <-signalCtx.Done():
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
