// Command metaball opens a window (or, built for js/wasm, a full-page
// canvas) and renders the metaball field until it is closed.
//
//	GOOS=js GOARCH=wasm go build -o cmd/wasm-demo/main.wasm ./cmd/metaball
//
// builds the browser version served by cmd/wasm-demo. Press "p" to toggle
// post-processing and Escape to quit.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/kjkrol/metaball/internal/metaball"
	"github.com/kjkrol/metaball/internal/platform/window"
	"github.com/kjkrol/metaball/pkg/gfx"
)

func main() {
	configPath := flag.String("config", "", "TOML config file")
	quads := flag.Int("quads", 0, "number of quads, overrides the config")
	post := flag.String("post", "", "post-processing on|off, overrides the config")
	logLevel := flag.String("log-level", "", "debug|info|warn|error, overrides the config")
	flag.Parse()

	conf := metaball.DefaultConfig()
	if *configPath != "" {
		var err error
		if conf, err = metaball.LoadConfig(*configPath); err != nil {
			slog.Error("config", "err", err)
			os.Exit(1)
		}
	}
	if *quads > 0 {
		conf.QuadCount = *quads
	}
	switch *post {
	case "":
	case "on":
		conf.PostProcessing = true
	case "off":
		conf.PostProcessing = false
	default:
		slog.Error("-post must be on or off", "value", *post)
		os.Exit(2)
	}
	if *logLevel != "" {
		conf.LogLevel = *logLevel
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(conf.LogLevel)); err != nil {
		slog.Warn("unknown log level, using info", "level", conf.LogLevel)
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	gfx.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, conf); err != nil {
		logger.Error("metaball", "err", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, conf metaball.Config) error {
	surface, err := window.NewSurface(conf.Window)
	if err != nil {
		return err
	}
	defer surface.Close()

	driver, err := metaball.NewDriver(surface.Context(), surface, conf)
	if err != nil {
		return err
	}
	defer driver.Close()

	slog.Info("running", "quads", conf.QuadCount, "post_processing", conf.PostProcessing)
	return driver.Run(ctx, surface)
}
