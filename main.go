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

	"urbangpt/analysis"
	"urbangpt/config"
	"urbangpt/engine"
	"urbangpt/logging"
	"urbangpt/provider"
	"urbangpt/retrieval"
	"urbangpt/server"
	"urbangpt/storage"
)

const (
	Version = "v0.01.00"
	License = "Apache-2.0"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(cfg.DataDir(), config.CheckDebug())
	defer log.Close()
	log.Printf("urbangpt %s starting", Version)

	store, err := storage.Open(cfg.DatabasePath())
	if err != nil {
		fmt.Printf("Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	providerCfg := provider.Config{
		Type:    provider.MapProviderIDToType(cfg.ProviderID),
		BaseURL: cfg.ProviderBaseURL,
		Model:   cfg.ProviderModel,
		APIKey:  cfg.ProviderAPIKey,
	}
	if providerCfg.Type == provider.ProviderTypeOllama {
		providerCfg.BaseURL = cfg.OllamaHost
		providerCfg.Model = cfg.OllamaModel
	}
	p, err := provider.NewProvider(providerCfg)
	if err != nil {
		fmt.Printf("Failed to initialize provider: %v\n", err)
		os.Exit(1)
	}
	if err := p.Ping(context.Background()); err != nil {
		// The service still starts; turns will surface failures per chat.
		log.Errorf("provider ping failed: %v", err)
	}

	runner := analysis.NewScriptRunner(cfg.PythonBin, cfg.ScriptsDir, log)
	retriever := retrieval.NewClient(cfg.EmbeddingServerURL, log)
	keywords, err := retrieval.LoadKeywords(cfg.KeywordsFile())
	if err != nil {
		fmt.Printf("Failed to load keywords: %v\n", err)
		os.Exit(1)
	}

	eng := engine.New(cfg, store, p, runner, retriever, keywords, log)
	srv := server.New(cfg, store, eng, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)
		}
	case sig := <-sigCh:
		log.Printf("received %s, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Errorf("shutdown: %v", err)
		}
	}
}
