package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"ascension/cmd/game/ui"
	"ascension/internal/config"
	"ascension/internal/debug"
	"ascension/internal/game"
	"ascension/internal/game/director/processors"
	"ascension/internal/llm"
	"ascension/internal/observability"
	"ascension/internal/save"
)

func createApp() (ui.Model, func(game.State), error) {
	cfg, err := config.Load()
	if err != nil {
		return ui.Model{}, nil, err
	}
	if cfg.OpenAIAPIKey == "" {
		return ui.Model{}, nil, fmt.Errorf("please set OPENAI_API_KEY environment variable")
	}

	debugLogger := debug.NewLogger(cfg.Debug)

	ctx := context.Background()
	tracerProvider, err := observability.InitTracing(ctx, observability.Config{
		Enabled:      cfg.TracingEnabled,
		Environment:  cfg.Environment,
		LangfuseHost: cfg.LangfuseHost,
		PublicKey:    cfg.LangfusePublicKey,
		SecretKey:    cfg.LangfuseSecretKey,
	})
	if err != nil {
		debugLogger.Printf("Failed to initialize tracing: %v", err)
	} else if tracerProvider.IsEnabled() {
		debugLogger.Println("OpenTelemetry tracing initialized and enabled")
	} else {
		debugLogger.Println("OpenTelemetry tracing disabled (set OTEL_TRACES_ENABLED=true to enable)")
	}

	service := llm.NewService(cfg.OpenAIAPIKey, cfg.Model, debugLogger)
	narrator := llm.NewNarrator(service)

	store, err := save.Open(cfg.SaveDBPath)
	if err != nil {
		return ui.Model{}, nil, fmt.Errorf("failed to open save store: %w", err)
	}

	// Resume the latest snapshot when one exists, otherwise start fresh.
	st, found, err := store.LoadLatest()
	if err != nil {
		return ui.Model{}, nil, fmt.Errorf("failed to load latest snapshot: %w", err)
	}
	if !found {
		st = game.NewDefaultState(cfg.PlayerName)
		debugLogger.Printf("starting new game for %s", cfg.PlayerName)
	} else {
		debugLogger.Printf("resumed snapshot: %s at %s", st.Player.Name, st.Player.Realm)
	}

	env := &processors.Env{
		Rules: game.Rules{
			StatsEnabled:    cfg.StatsEnabled,
			NarrativeCombat: cfg.NarrativeCombat,
		},
		Debug: debugLogger,
	}

	deps := ui.Deps{
		Narrator:  narrator,
		Env:       env,
		Store:     store,
		Debug:     debugLogger,
		Model:     cfg.Model,
		SessionID: uuid.NewString(),
	}
	model := ui.NewModel(deps, st, cfg.HistorySize)

	cleanup := func(final game.State) {
		// Autosave so the next launch resumes where this one stopped.
		if _, err := store.SaveSnapshot("autosave", final); err != nil {
			debugLogger.Printf("autosave failed: %v", err)
		}
		store.Close()
		if tracerProvider != nil {
			tracerProvider.Shutdown(context.Background())
		}
	}

	return model, cleanup, nil
}
