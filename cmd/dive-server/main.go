// Command dive-server runs the ZH-L16C decompression engine as a REST
// service: create dive sessions, feed them exposures, and query ceiling,
// NDL, and decompression plans over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/deepwater-eng/buhlmann/internal/app"
	"github.com/deepwater-eng/buhlmann/internal/log"
	"github.com/deepwater-eng/buhlmann/pkg/config"
)

const version = "1.0-" + runtime.GOOS + "/" + runtime.GOARCH

func main() {
	cfgFile := flag.String("config", "dive-server.yaml", "path to configuration source (YAML file or SQLite database, per -config-backend)")
	cfgBackend := flag.String("config-backend", "yaml", "configuration backend: 'yaml' or 'sqlite'")
	debug := flag.Bool("debug", false, "turn on debug logging")
	logFile := flag.String("log-file", "", "write logs to this file (rotated via lumberjack) instead of stderr")
	showVersion := flag.Bool("version", false, "show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("dive-server %s\n", version)
		os.Exit(0)
	}

	if err := log.Init(*debug, *logFile); err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	provider, err := loadProvider(*cfgFile, *cfgBackend)
	if err != nil {
		log.Errorf("failed to load configuration: %v", err)
		os.Exit(1)
	}
	defer provider.Close()

	application := app.New(provider, log.GetSugaredLogger())
	if err := application.Run(context.Background()); err != nil {
		log.Errorf("application error: %v", err)
		os.Exit(1)
	}
}

func loadProvider(cfgFile, cfgBackend string) (config.Provider, error) {
	filename, err := filepath.Abs(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("resolving config path: %w", err)
	}

	switch cfgBackend {
	case "yaml":
		return config.NewYAMLProvider(filename, false), nil
	case "sqlite":
		return config.NewSQLiteProvider(filename)
	default:
		return nil, fmt.Errorf("unsupported configuration backend %q, use 'yaml' or 'sqlite'", cfgBackend)
	}
}
