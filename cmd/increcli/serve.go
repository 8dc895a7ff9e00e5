package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"incremental-engine/internal/buildcache"
	"incremental-engine/internal/compcache"
)

var (
	serveAddr     string
	serveInterval time.Duration
)

var cacheServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve Prometheus metrics for the compilation and build caches until interrupted",
	Args:  cobra.NoArgs,
	RunE:  runCacheServe,
}

func init() {
	cacheServeCmd.Flags().StringVar(&serveAddr, "addr", ":9090", "address to serve /metrics on")
	cacheServeCmd.Flags().DurationVar(&serveInterval, "interval", 5*time.Second, "how often to resample cache stats")
	cacheCmd.AddCommand(cacheServeCmd)
}

// runCacheServe registers the compilation cache's and build cache's
// counters against a fresh registry, resamples them on a ticker (both
// caches are plain in-memory structures, not metrics-aware themselves),
// and serves /metrics until interrupted.
func runCacheServe(cmd *cobra.Command, args []string) error {
	cc := compcache.New(filepath.Join(cacheDir, "compiled"))
	if err := cc.Load(); err != nil {
		return err
	}
	bc, err := newBuildCache()
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	ccMetrics := compcache.NewMetrics(reg, "compiled")
	bcMetrics := buildcache.NewMetrics(reg, "build")

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: serveAddr, Handler: mux}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		fmt.Fprintf(os.Stdout, "serving metrics on %s/metrics\n", serveAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	ticker := time.NewTicker(serveInterval)
	defer ticker.Stop()
	for {
		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		case <-ticker.C:
			ccMetrics.Sample(cc)
			bcMetrics.Sample(bc)
		}
	}
}
