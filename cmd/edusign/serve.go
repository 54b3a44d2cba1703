package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"edusign/internal/metrics"
	"edusign/internal/rest"
	"edusign/internal/scheduler"
)

func (c *cli) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe()
		},
	}
}

func (c *cli) runServe() error {
	metrics.Init()

	a, err := c.openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	advisor := c.newAdvisor(a.badges)

	sched := scheduler.New(c.cfg.BackupSchedule, c.logger.Named("scheduler"))
	sched.SetJob(scheduler.NewBackup(a.badges, c.cfg.BackupDir).Job)
	if err := sched.Start(); err != nil {
		return err
	}
	defer sched.Stop()

	e := rest.NewServer(
		rest.NewBadgeHandler(a.badges, c.logger.Named("rest"), c.cfg.MintDelay),
		rest.NewAdvisorHandler(advisor),
		c.logger.Named("http"),
		c.cfg.CORSOrigins,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		c.logger.Info("Server starting", zap.String("addr", c.cfg.HTTPAddr), zap.String("version", version))
		if err := e.Start(c.cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		c.logger.Info("Shutting down server")
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		c.logger.Error("Server forced to shutdown", zap.Error(err))
		return err
	}
	c.logger.Info("Server exited gracefully")
	return nil
}
