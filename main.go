package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/firwatch/crime_data_api/config"
)

const cleanupInterval = time.Minute

func main() {
	cfg := config.GetConfig()
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	api := NewAPI(cfg, logger)
	e := newRouter(api)
	e.Use(middleware.BodyLimit(cfg.MaxUpload))
	e.Use(requestLogger(logger))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.UploadTTL > 0 {
		go cleanupLoop(ctx, logger, cfg.UploadDir, cfg.UploadTTL)
	}

	go func() {
		logger.Info().Str("addr", cfg.Addr).Msg("listening")
		if err := e.Start(cfg.Addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown")
	}
	logger.Info().Msg("stopped")
}

// newRouter builds the echo instance with every route registered.
func newRouter(api *API) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.GET("/", api.Health)
	e.POST("/login", api.Login)
	e.GET("/chain-snatching", api.ChainSnatching, api.requireAuth)
	e.GET("/dashboard", api.Dashboard)
	e.Static("/static", "static")

	g := e.Group("/api")
	g.POST("/upload", api.Upload)
	g.GET("/crimes/total", api.TotalCrimes)
	g.GET("/crimes/by-type", api.CrimesByType)
	g.GET("/crimes/by-year", api.CrimesByYear)
	g.GET("/crimes/by-location", api.CrimesByLocation)
	g.GET("/crimes/stats", api.ColumnStats)
	g.GET("/crimes/plot", api.PlotBreakdown)
	g.GET("/summary", api.Summary)

	return e
}

// cleanupLoop periodically drops uploads older than the TTL so the demo
// server does not accumulate files forever.
func cleanupLoop(ctx context.Context, logger zerolog.Logger, dir string, ttl time.Duration) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := removeOldFiles(dir, time.Now().Add(-ttl)); err != nil && !os.IsNotExist(err) {
				logger.Warn().Err(err).Str("dir", dir).Msg("upload cleanup")
			}
		}
	}
}

// removeOldFiles removes every file under dirPath whose mtime is before
// maxAge, recursing into subdirectories.
func removeOldFiles(dirPath string, maxAge time.Time) error {
	files, err := os.ReadDir(dirPath)
	if err != nil {
		return err
	}

	for _, file := range files {
		filePath := filepath.Join(dirPath, file.Name())

		if file.IsDir() {
			if err := removeOldFiles(filePath, maxAge); err != nil {
				return err
			}
			continue
		}

		fileStat, err := os.Stat(filePath)
		if err != nil {
			return err
		}
		if fileStat.ModTime().Before(maxAge) {
			if err := os.Remove(filePath); err != nil {
				return err
			}
		}
	}

	return nil
}
