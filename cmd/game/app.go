package main

import (
	"fmt"

	"github.com/tatianab/silk-route/internal/config"
	"github.com/tatianab/silk-route/internal/content"
	"github.com/tatianab/silk-route/internal/engine"
	"github.com/tatianab/silk-route/internal/models"
	"github.com/tatianab/silk-route/internal/storage/sqlite"
	"go.uber.org/zap"
)

// app is the wired graph, store and engine for one slot.
type app struct {
	graph   *content.Graph
	adapter models.Adapter
	store   *models.Store
	engine  *engine.Engine
	closer  func() error
}

func (a *app) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer()
}

func loadGraph(path string) (*content.Graph, error) {
	if path == "" {
		return content.Default()
	}
	return content.LoadFile(path)
}

// openAdapter builds the persistence adapter for the configured backend.
// The returned close func is never nil.
func openAdapter(cfg *config.Config) (models.Adapter, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Backend {
	case config.BackendSQLite:
		store, err := sqlite.Open(cfg.DBPath, cfg.Slot)
		if err != nil {
			return nil, noop, err
		}
		return store, store.Close, nil
	case config.BackendMemory:
		return &models.MemoryAdapter{}, noop, nil
	default:
		a, err := models.NewFileAdapter(cfg.SaveDir, cfg.Slot)
		if err != nil {
			return nil, noop, err
		}
		return a, noop, nil
	}
}

func openApp(cfg *config.Config, logger *zap.Logger) (*app, error) {
	g, err := loadGraph(cfg.ContentPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load content: %w", err)
	}
	logger.Info("content loaded", zap.String("title", g.Title()), zap.Int("chapters", len(g.Chapters())))

	adapter, closer, err := openAdapter(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	store := models.NewStore(adapter, g, logger)
	return &app{
		graph:   g,
		adapter: adapter,
		store:   store,
		engine:  engine.NewEngine(g, store, logger),
		closer:  closer,
	}, nil
}

// slots lists the save slots of the configured backend.
func slots(cfg *config.Config, adapter models.Adapter) ([]string, error) {
	switch a := adapter.(type) {
	case *sqlite.Store:
		return a.Slots()
	case *models.FileAdapter:
		return models.ListSlots(cfg.SaveDir)
	}
	return nil, nil
}
