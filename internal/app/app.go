// Package app wires configuration into the services shared by the API
// server and the worker.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/suPer8Hu/legal-assistant/internal/ai"
	"github.com/suPer8Hu/legal-assistant/internal/auth"
	"github.com/suPer8Hu/legal-assistant/internal/chat"
	"github.com/suPer8Hu/legal-assistant/internal/classifier"
	"github.com/suPer8Hu/legal-assistant/internal/config"
	"github.com/suPer8Hu/legal-assistant/internal/db"
	"github.com/suPer8Hu/legal-assistant/internal/document"
	"github.com/suPer8Hu/legal-assistant/internal/i18n"
	"github.com/suPer8Hu/legal-assistant/internal/ingest"
	"github.com/suPer8Hu/legal-assistant/internal/models"
	"github.com/suPer8Hu/legal-assistant/internal/store/mongostore"
	"github.com/suPer8Hu/legal-assistant/internal/store/redisstore"
)

type App struct {
	Auth     *auth.Service
	Chat     *chat.Service
	Docs     *document.Service
	Registry *ai.Registry

	closers []func() error
}

// Close releases connections in reverse order of creation.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	return errors.Join(errs...)
}

type stores struct {
	users auth.UserStore
	chat  chat.Store
	docs  document.Store
}

func (a *App) openStores(ctx context.Context, cfg config.Config) (stores, error) {
	if cfg.DBDriver == config.DriverMongo {
		ms, err := mongostore.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return stores{}, err
		}
		a.closers = append(a.closers, func() error { return ms.Close(context.Background()) })
		return stores{users: ms, chat: ms, docs: ms}, nil
	}

	gdb, err := db.Connect(cfg.DBDriver, cfg.DBDSN,
		&models.User{}, &chat.Session{}, &chat.Message{}, &chat.Job{},
		&document.Document{}, &document.Chunk{},
	)
	if err != nil {
		return stores{}, err
	}
	if sqlDB, err := gdb.DB(); err == nil {
		a.closers = append(a.closers, sqlDB.Close)
	}
	return stores{users: auth.NewUserRepo(gdb), chat: chat.NewRepo(gdb), docs: document.NewRepo(gdb)}, nil
}

// sessionStore prefers Redis and falls back to process memory, which only
// suits a single API instance.
func (a *App) sessionStore(ctx context.Context, cfg config.Config) auth.SessionStore {
	if cfg.RedisAddr == "" {
		slog.Warn("REDIS_ADDR empty, login sessions kept in memory")
		return auth.NewMemorySessions()
	}
	rs := redisstore.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rs.Ping(pctx); err != nil {
		slog.Warn("redis unreachable, login sessions kept in memory", "addr", cfg.RedisAddr, "err", err)
		_ = rs.Close()
		return auth.NewMemorySessions()
	}
	a.closers = append(a.closers, rs.Close)
	return rs
}

func storage(ctx context.Context, cfg config.Config) (document.Storage, error) {
	if cfg.StorageType == config.StorageMinIO {
		return document.NewMinIOStorage(ctx, document.MinIOConfig{
			Endpoint:  cfg.MinIOEndpoint,
			AccessKey: cfg.MinIOAccessKey,
			SecretKey: cfg.MinIOSecretKey,
			Bucket:    cfg.MinIOBucket,
			UseSSL:    cfg.MinIOUseSSL,
		})
	}
	return document.NewLocalStorage(cfg.StorageLocalPath)
}

// New builds every service. A missing classifier artifact or tesseract
// binary only disables the features that need them.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	a := &App{}
	ok := false
	defer func() {
		if !ok {
			_ = a.Close()
		}
	}()

	st, err := a.openStores(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.Auth = auth.NewService(st.users, a.sessionStore(ctx, cfg), cfg.JWTSecret, cfg.SessionTTL)

	clf, err := classifier.Load(cfg.ClassifierModelPath)
	if err != nil {
		slog.Warn("classifier not loaded, predictions disabled", "path", cfg.ClassifierModelPath, "err", err)
	}

	ocr, err := ingest.NewOCR(cfg.TesseractPath)
	if err != nil {
		slog.Warn("tesseract not found, image uploads disabled", "err", err)
		ocr = nil
	}
	ext, err := ingest.NewExtractor(ctx, ocr)
	if err != nil {
		return nil, err
	}
	blobs, err := storage(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.Docs, err = document.NewService(ctx, st.docs, blobs, ext)
	if err != nil {
		return nil, err
	}

	a.Registry = ai.NewRegistry()
	ai.RegisterDefaults(a.Registry, ai.Settings{
		Gemini: ai.GeminiConfig{
			APIKey:  cfg.GeminiAPIKey,
			BaseURL: cfg.GeminiBaseURL,
			Model:   cfg.GeminiModel,
			Timeout: cfg.AITimeout,
		},
		OpenRouter: ai.OpenRouterConfig{
			BaseURL: cfg.OpenRouterBaseURL,
			APIKey:  cfg.OpenRouterAPIKey,
			Model:   cfg.OpenRouterModel,
			SiteURL: cfg.OpenRouterSiteURL,
			AppName: cfg.OpenRouterAppName,
		},
		Ollama: ai.OllamaConfig{BaseURL: cfg.OllamaBaseURL, Model: cfg.OllamaModel},
	})
	if !a.Registry.Has(cfg.AIProvider) {
		return nil, fmt.Errorf("app: unsupported AI_PROVIDER %q", cfg.AIProvider)
	}

	a.Chat = chat.NewService(st.chat, a.Registry, clf, chat.Options{
		ContextWindowSize: cfg.ChatContextWindowSize,
		Timeout:           cfg.AITimeout,
		DefaultProvider:   cfg.AIProvider,
		DefaultLanguage:   i18n.Resolve(cfg.DefaultLanguage),
	})

	ok = true
	return a, nil
}
