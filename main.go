package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"rptconv/internal/cli"
	"rptconv/internal/config"
	"rptconv/internal/convert"
	"rptconv/internal/export"
	"rptconv/internal/handler"
	"rptconv/internal/middleware"
)

func main() {
	// Subcommand dispatch before flag parsing: "rptconv convert ..." runs
	// the batch converter and exits, everything else starts the server.
	if len(os.Args) > 1 && os.Args[1] == "convert" {
		cfg := loadConfig("./data/config.json")
		cli.RunConvert(os.Args[2:], newService(cfg))
		return
	}

	fs := ff.NewFlagSet("rptconv")
	var (
		configPath = fs.StringLong("config", "./data/config.json", "Path to the JSON config file")
		addr       = fs.StringLong("addr", "", "Listen address (overrides config)")
	)
	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("RPTCONV"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	cfg := loadConfig(*configPath)
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	limiter := middleware.NewRateLimiter(60, time.Minute)
	defer limiter.Stop()

	app := handler.NewApp(newService(cfg), cfg.Upload.MaxMB, limiter)
	mux := http.NewServeMux()
	app.Routes(mux)

	log.Printf("[Main] listening on %s", cfg.Server.Addr)
	if err := http.ListenAndServe(cfg.Server.Addr, mux); err != nil {
		log.Fatalf("[Main] server: %v", err)
	}
}

func loadConfig(path string) *config.Config {
	cm, err := config.NewConfigManager(path)
	if err != nil {
		log.Fatalf("[Main] config: %v", err)
	}
	if err := cm.Load(); err != nil {
		log.Fatalf("[Main] config: %v", err)
	}
	return cm.Get()
}

func newService(cfg *config.Config) *convert.Service {
	return convert.NewService(cfg.Preview.Rows, export.Options{
		Title:       cfg.Export.Title,
		MaxColWidth: cfg.Export.MaxColWidth,
	})
}
