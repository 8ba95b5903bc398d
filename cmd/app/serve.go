package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/maloquacious/solicitreview/internal/httpapi"
	"github.com/maloquacious/solicitreview/internal/prompt"
)

// runServe serves the admin (JSON) API on loopback with graceful shutdown.
func runServe(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	api := &httpapi.Server{
		Tracker: a.tracker,
		Copy:    prompt.New(a.lang, a.appName),
		Ready:   a.ready,
		Log:     a.log,
		Version: version.String(),
	}

	// Bind admin to 127.0.0.1 only (loopback enforcement)
	adminListener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", adminPort))
	if err != nil {
		return fmt.Errorf("admin listener bind failed (loopback only): %w", err)
	}
	adminSrv := &http.Server{
		Handler:           api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("admin server listening on 127.0.0.1:%d (JSON-only)", adminPort)
		if err := adminSrv.Serve(adminListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("admin server error: %w", err)
		}
	}()

	// Optional run timer
	if exitAfter > 0 {
		a.log.Info("exit-after timer set: %s", exitAfter)
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, exitAfter)
		defer cancel()
	}

	var serveErr error
	select {
	case <-ctx.Done():
		// graceful shutdown
	case serveErr = <-errCh:
		a.log.Error("server error: %v", serveErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTO)
	defer cancel()

	if err := adminSrv.Shutdown(shutdownCtx); err != nil {
		a.log.Warn("shutdown: %v", err)
	}
	a.log.Info("shutdown complete")
	return serveErr
}
