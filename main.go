package main

import (
	"embed"
	"flag"
	"os"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	"github.com/plattj-ai/Technical-Drawing-Practice/internal/config"
	"github.com/plattj-ai/Technical-Drawing-Practice/internal/logging"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	configDir := flag.String("config", ".", "directory containing drawing.yaml")
	flag.Parse()

	cfg, err := config.Load(*configDir)
	if err != nil {
		bootLog := logging.New(os.Stderr, "info")
		bootLog.Fatal().Err(err).Msg("loading config")
	}
	log := logging.New(os.Stdout, cfg.LogLevel)

	app, err := NewApp(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("starting app")
	}

	err = wails.Run(&options.App{
		Title:  "Technical Drawing Practice",
		Width:  1024,
		Height: 768,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		OnStartup: app.startup,
		Bind: []interface{}{
			app,
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("wails exited")
		os.Exit(1)
	}
}
