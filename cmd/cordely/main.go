package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dropDatabas3/cordely/internal/app"
	"github.com/dropDatabas3/cordely/internal/config"
	"github.com/dropDatabas3/cordely/internal/metrics"
	"github.com/dropDatabas3/cordely/internal/observability/logger"
)

// version se inyecta en build time via -ldflags.
var version = "dev"

func main() {
	var (
		flagConfigPath = ""
		flagEnvFile    = ".env"
	)

	root := &cobra.Command{
		Use:   "cordely",
		Short: "Consola administrativa de Cordely (tenants, billing, credenciales)",
	}
	root.PersistentFlags().StringVar(&flagConfigPath, "config", "", "ruta a config.yaml (fallback: $CONFIG_PATH o configs/config.yaml)")
	root.PersistentFlags().StringVar(&flagEnvFile, "env-file", ".env", "ruta a .env (si existe, se carga)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Levanta el servidor HTTP de la consola",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(flagConfigPath, flagEnvFile)
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Imprime la versión",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}

	root.AddCommand(serveCmd)
	root.AddCommand(versionCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func serve(configPath, envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err == nil {
			fmt.Printf("dotenv: cargado %s\n", envFile)
		}
	}

	if configPath == "" {
		configPath = os.Getenv("CONFIG_PATH")
	}
	if configPath == "" {
		if st, err := os.Stat("configs/config.yaml"); err == nil && !st.IsDir() {
			configPath = "configs/config.yaml"
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger.Init(logger.Config{
		Env:         cfg.App.Env,
		Level:       cfg.Log.Level,
		ServiceName: "cordely",
		Version:     version,
	})
	defer logger.Sync()
	log := logger.L()

	if err := metrics.Register(nil); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, version)
	if err != nil {
		return fmt.Errorf("wiring: %w", err)
	}
	defer application.Close()

	readTimeout, _ := time.ParseDuration(cfg.Server.ReadTimeout)
	writeTimeout, _ := time.ParseDuration(cfg.Server.WriteTimeout)

	apiSrv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      application.Handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsSrv := &http.Server{
		Addr:    cfg.Server.MetricsAddr,
		Handler: metricsMux,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("api server up",
			logger.String("addr", cfg.Server.Addr),
			logger.String("storage", cfg.Storage.Driver),
			logger.String("mailer", cfg.Mailer.Kind),
		)
		if err := apiSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		log.Info("metrics server up", logger.String("addr", cfg.Server.MetricsAddr))
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown: cerrando servidores")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = metricsSrv.Shutdown(shutdownCtx)
		return apiSrv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server terminó con error", logger.Err(err))
		return err
	}
	log.Info("bye")
	return nil
}
