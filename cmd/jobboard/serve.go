package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"jobboard-engine/internal/config"
	"jobboard-engine/internal/events"
	"jobboard-engine/internal/httpapi"
	"jobboard-engine/internal/scheduler"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the job board and JSON API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (overrides app.port)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	hub := events.NewHub()
	var reload func()
	if a.cached != nil {
		a.cached.OnReload = func(n int) { hub.PublishReload(a.source.Name(), n) }
		reload = a.cached.Invalidate
		if secs := a.cfg.Source.RefreshSeconds; secs > 0 {
			go scheduler.Every(ctx, time.Duration(secs)*time.Second, "refresh", func(ctx context.Context) error {
				a.cached.Invalidate()
				a.cached.Jobs(ctx)
				return nil
			})
		}
	}

	port := a.cfg.App.Port
	if servePort > 0 {
		port = servePort
	}

	h := httpapi.NewHandler(httpapi.Deps{
		Board:        a.board,
		Hub:          hub,
		Classifier:   a.cfg.Classifier(),
		SourceName:   a.source.Name(),
		LastModified: a.lastModified,
		Reload:       reload,
		CfgVal:       a.cfgVal,
		UserCfgPath:  a.cfgPath,
		LoadCfg:      func() (config.Config, error) { return config.Load(a.cfgPath) },
		Limiter:      httpapi.NewClientLimiter(a.cfg.HTTP.RatePerSec, a.cfg.HTTP.Burst),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info().Int("port", port).Str("source", a.source.Name()).Msg("job board listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "listen")
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return errors.Wrap(srv.Shutdown(shutdownCtx), "shutdown")
}
