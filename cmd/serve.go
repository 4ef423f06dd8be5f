package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/naka-gawa/loc-chart/internal/chart"
	"github.com/naka-gawa/loc-chart/internal/handler"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve charts over HTTP",
	Long:  `Starts an HTTP server answering GET /api?username=... with an SVG chart.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := setup(); err != nil {
			return err
		}
		logger := newLogger(cmd)
		pipeline, err := newPipeline(logger)
		if err != nil {
			return err
		}

		mux := http.NewServeMux()
		mux.Handle("/api", handler.NewChartHandler(pipeline, chart.NewRenderer(), cfg.CacheSeconds, logger))
		server := &http.Server{
			Addr:              cfg.Addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = server.Shutdown(shutdownCtx)
		}()

		fmt.Fprintf(os.Stderr, "Listening on %s\n", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Address to listen on (default :8080)")
	serveCmd.Flags().Int("cache-seconds", 0, "max-age sent with successful images (default 4h)")
	_ = viper.BindPFlag("addr", serveCmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("cache-seconds", serveCmd.Flags().Lookup("cache-seconds"))
}
