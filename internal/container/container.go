package container

import (
	"context"
	"fmt"
	"net/http"
	"runtime"

	"go-translation-lens/internal/catalog"
	"go-translation-lens/internal/config"
	"go-translation-lens/internal/conversation"
	"go-translation-lens/internal/gemini"
	"go-translation-lens/internal/logger"
	"go-translation-lens/internal/observer"
	"go-translation-lens/internal/request"
	"go-translation-lens/internal/service"
	"go-translation-lens/internal/session"
	"go-translation-lens/internal/speech"
	"go-translation-lens/internal/storage"
	"go-translation-lens/internal/transport"
)

// Container holds all application dependencies
type Container struct {
	config   *config.Config
	client   gemini.Client
	service  service.TranslationService
	pipeline *conversation.Pipeline
	speech   *speech.Orchestrator
	pool     *conversation.WorkerPool
	handler  http.Handler
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	events := observer.NewEventPublisher()
	events.Subscribe(observer.NewLoggingObserver(logger.Logger))
	events.Subscribe(observer.NewMetricsObserver())

	builder := request.NewBuilder(cfg.GeminiModel)
	svc := service.NewTranslationService(builder, client, events, cfg.ModelCallTimeout)

	orchestrator := speech.NewOrchestrator(
		speech.NewNullSynthesizer(),
		client,
		speech.NewLoggingPlayer(),
		cfg.GeminiTTSModel,
		cfg.TTSVoice,
	)

	pool := conversation.NewWorkerPool(runtime.NumCPU())
	convSession := conversation.NewSession(mustLanguage("English"), mustLanguage("Spanish"))
	pipeline := conversation.NewPipeline(convSession, svc, orchestrator, pool)

	viewState := session.NewViewState()
	fetcher := storage.NewHTTPImageFetcher(cfg.ImageFetchTimeout)

	var artifacts storage.ArtifactStore
	if cfg.ArtifactStoreEnabled() {
		artifacts, err = storage.NewAzureArtifactStore(cfg.AzureAccountName, cfg.AzureAccountKey, cfg.AzureContainer)
		if err != nil {
			return nil, fmt.Errorf("failed to create artifact store: %w", err)
		}
	}

	handler := transport.NewHandler(svc, pipeline, orchestrator, viewState, fetcher, artifacts, cfg)

	return &Container{
		config:   cfg,
		client:   client,
		service:  svc,
		pipeline: pipeline,
		speech:   orchestrator,
		pool:     pool,
		handler:  handler,
	}, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}

// Close drains the conversation worker pool
func (c *Container) Close() {
	c.pool.Wait()
	c.pool.Close()
}

func mustLanguage(name string) catalog.Language {
	l, ok := catalog.ByName(name)
	if !ok {
		panic(fmt.Sprintf("language %q missing from catalog", name))
	}
	return l
}
