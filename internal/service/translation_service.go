package service

import (
	"context"
	"errors"
	"time"

	apperrors "go-translation-lens/internal/errors"
	"go-translation-lens/internal/gemini"
	"go-translation-lens/internal/normalize"
	"go-translation-lens/internal/observer"
	"go-translation-lens/internal/request"
	"go-translation-lens/pkg/models"
)

// TranslationService orchestrates the build -> call -> normalize flow for
// every task kind. All remote-call errors are caught here; they never
// crash the hosting session and no partial result is ever returned.
type TranslationService interface {
	AnalyzeScene(ctx context.Context, image []byte, targetLanguage string) (*models.SceneAnalysisResult, error)
	AnalyzeDocument(ctx context.Context, image []byte, targetLanguage string) (*models.DocumentAnalysisResult, error)
	Translate(ctx context.Context, text, sourceLang, targetLang string, history []request.HistoryEntry) (string, error)
	AnswerQuestion(ctx context.Context, question string, sceneCtx *models.SceneAnalysisResult, image []byte) (string, error)
}

type translationService struct {
	builder *request.Builder
	client  gemini.Client
	events  observer.Subject

	// callTimeout bounds every remote call; the model service imposes
	// no timeout of its own
	callTimeout time.Duration
}

// NewTranslationService creates the orchestration service
func NewTranslationService(builder *request.Builder, client gemini.Client, events observer.Subject, callTimeout time.Duration) TranslationService {
	return &translationService{
		builder:     builder,
		client:      client,
		events:      events,
		callTimeout: callTimeout,
	}
}

func (s *translationService) AnalyzeScene(ctx context.Context, image []byte, targetLanguage string) (*models.SceneAnalysisResult, error) {
	req, err := s.builder.SceneAnalysis(image, targetLanguage)
	if err != nil {
		return nil, err
	}
	raw, err := s.generate(ctx, request.TaskSceneAnalysis, req)
	if err != nil {
		return nil, err
	}
	result, err := normalize.SceneResult(raw)
	if err != nil {
		s.notifyFailed(ctx, request.TaskSceneAnalysis, req.Model, err)
		return nil, err
	}
	return result, nil
}

func (s *translationService) AnalyzeDocument(ctx context.Context, image []byte, targetLanguage string) (*models.DocumentAnalysisResult, error) {
	req, err := s.builder.DocumentAnalysis(image, targetLanguage)
	if err != nil {
		return nil, err
	}
	raw, err := s.generate(ctx, request.TaskDocumentAnalysis, req)
	if err != nil {
		return nil, err
	}
	result, err := normalize.DocumentResult(raw)
	if err != nil {
		s.notifyFailed(ctx, request.TaskDocumentAnalysis, req.Model, err)
		return nil, err
	}
	return result, nil
}

func (s *translationService) Translate(ctx context.Context, text, sourceLang, targetLang string, history []request.HistoryEntry) (string, error) {
	req, err := s.builder.ConversationTranslation(text, sourceLang, targetLang, history)
	if err != nil {
		return "", err
	}
	raw, err := s.generate(ctx, request.TaskConversationTranslation, req)
	if err != nil {
		return "", err
	}
	return normalize.Translation(raw)
}

func (s *translationService) AnswerQuestion(ctx context.Context, question string, sceneCtx *models.SceneAnalysisResult, image []byte) (string, error) {
	req, err := s.builder.ContextualQuestion(question, sceneCtx, image)
	if err != nil {
		return "", err
	}
	raw, err := s.generate(ctx, request.TaskContextualQuestion, req)
	if err != nil {
		return "", err
	}
	return normalize.Translation(raw)
}

// generate runs one model call with the imposed timeout and lifecycle events
func (s *translationService) generate(ctx context.Context, task request.TaskKind, req gemini.GenerateRequest) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	start := time.Now()
	s.events.NotifyObservers(ctx, observer.ModelCallEvent{
		EventType: observer.CallStarted,
		Task:      string(task),
		Model:     req.Model,
		Timestamp: start,
	})

	resp, err := s.client.GenerateContent(callCtx, req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || callCtx.Err() == context.DeadlineExceeded {
			err = apperrors.NewTimeoutError("model call timed out", err)
		}
		s.notifyFailed(ctx, task, req.Model, err)
		return "", err
	}

	s.events.NotifyObservers(ctx, observer.ModelCallEvent{
		EventType:      observer.CallCompleted,
		Task:           string(task),
		Model:          req.Model,
		Timestamp:      time.Now(),
		ProcessingTime: time.Since(start),
		Success:        true,
	})
	return resp.Text, nil
}

func (s *translationService) notifyFailed(ctx context.Context, task request.TaskKind, model string, err error) {
	s.events.NotifyObservers(ctx, observer.ModelCallEvent{
		EventType:    observer.CallFailed,
		Task:         string(task),
		Model:        model,
		Timestamp:    time.Now(),
		ErrorMessage: err.Error(),
	})
}
