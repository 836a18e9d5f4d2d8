package main

import (
	"embed"
	"fmt"
	"log/slog"
	"os"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	"github.com/Roboticela/OSI-Model-Simulator/internal/config"
	"github.com/Roboticela/OSI-Model-Simulator/internal/logging"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	// Detect development mode
	isDev := config.IsDevBuild(Version)
	cfg.Debug = cfg.Debug || isDev

	logger := logging.New(logging.Options{
		Debug:  cfg.Debug,
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.LogFile(),
	})
	slog.SetDefault(logger.Logger)

	// Create an instance of the app structure
	app := NewApp(cfg, logger)

	// Create application with options
	err = wails.Run(&options.App{
		Title:     "OSI Model Simulator",
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		MinWidth:  cfg.Window.MinWidth,
		MinHeight: cfg.Window.MinHeight,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour: &options.RGBA{R: 15, G: 23, B: 42, A: 1},
		OnStartup:        app.startup,
		OnBeforeClose:    app.beforeClose,
		OnShutdown:       app.shutdown,
		Bind: []interface{}{
			app,
		},
		Logger:             logging.NewWailsLogger(logger.Logger),
		LogLevel:           logging.WailsLevel(cfg.Debug, cfg.Log.Level),
		LogLevelProduction: logging.WailsLevel(false, cfg.Log.Level),
		// Enable DevTools in development mode
		Debug: options.Debug{
			OpenInspectorOnStartup: isDev,
		},
	})

	if err != nil {
		logger.Error("application exited with error", slog.Any("error", err))
		_ = logger.Close()
		os.Exit(1)
	}
}
