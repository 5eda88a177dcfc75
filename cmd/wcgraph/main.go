// Command wcgraph sources a WooCommerce catalog into a linked node graph.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/wcgraph/internal/adapters/driven/config/file"
	mediafile "github.com/custodia-labs/wcgraph/internal/adapters/driven/media/file"
	"github.com/custodia-labs/wcgraph/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/wcgraph/internal/adapters/driving/cli"
	"github.com/custodia-labs/wcgraph/internal/connectors/woocommerce"
	"github.com/custodia-labs/wcgraph/internal/core/services"
	"github.com/custodia-labs/wcgraph/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// bootstrap opens the store and, when a valid config is found, builds the
// pipeline. Node browsing works without a config.
func bootstrap(opts cli.Options) (*cli.Services, error) {
	dataDir := opts.DataDir
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".wcgraph", "data")
	}

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	logger.Debug("Using database %s", store.Path())

	svc := &cli.Services{
		Nodes: services.NewHierarchyResolver(store.NodeStore()),
		Close: store.Close,
	}

	configPath := opts.ConfigPath
	if configPath == "" {
		if configPath, err = file.DefaultConfigPath(); err != nil {
			svc.PipelineErr = err
			return svc, nil
		}
	}

	cfg, err := file.LoadSourceConfig(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			err = fmt.Errorf("no config at %s, pass --config: %w", configPath, err)
		}
		svc.PipelineErr = err
		return svc, nil
	}

	if cfg.Media.Dir == "" {
		cfg.Media.Dir = filepath.Join(dataDir, "media")
	}

	httpClient := woocommerce.NewHTTPClient(cfg.Transport)
	client := woocommerce.NewClient(cfg, httpClient)

	mediaStore, err := mediafile.NewStore(cfg.Media.Dir, httpClient, store.FileRegistry())
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("opening media store: %w", err)
	}

	svc.Pipeline = services.NewPipeline(cfg, client, mediaStore, store.MediaCache(), store.NodeStore(), logger.Default())
	svc.Validator = client
	svc.Close = func() error {
		_ = client.Close()
		return store.Close()
	}
	logger.Debug("Catalog %s, fields %v", client.BaseURL(), cfg.Fields)
	return svc, nil
}
