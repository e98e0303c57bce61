package transport

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"go-translation-lens/internal/catalog"
	"go-translation-lens/internal/config"
	"go-translation-lens/internal/conversation"
	apperrors "go-translation-lens/internal/errors"
	"go-translation-lens/internal/logger"
	"go-translation-lens/internal/service"
	"go-translation-lens/internal/session"
	"go-translation-lens/internal/speech"
	"go-translation-lens/internal/storage"
	"go-translation-lens/pkg/models"
)

// ExportFileName is the fixed name of the downloadable translation artifact
const ExportFileName = "translated_document.txt"

var dataURIPrefix = regexp.MustCompile(`^data:image/\w+;base64,`)

// Handler bundles the dependencies behind the HTTP surface
type Handler struct {
	service   service.TranslationService
	pipeline  *conversation.Pipeline
	speech    *speech.Orchestrator
	view      *session.ViewState
	fetcher   storage.ImageFetcher
	artifacts storage.ArtifactStore
	cfg       *config.Config
}

// NewHandler builds the gin router with all routes and middleware
func NewHandler(
	svc service.TranslationService,
	pipeline *conversation.Pipeline,
	orchestrator *speech.Orchestrator,
	view *session.ViewState,
	fetcher storage.ImageFetcher,
	artifacts storage.ArtifactStore,
	cfg *config.Config,
) http.Handler {
	h := &Handler{
		service:   svc,
		pipeline:  pipeline,
		speech:    orchestrator,
		view:      view,
		fetcher:   fetcher,
		artifacts: artifacts,
		cfg:       cfg,
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestSizeLimiter(cfg.MaxRequestBodySize))

	r.GET("/health", healthCheck)

	v1 := r.Group("/v1")
	{
		v1.GET("/languages", listLanguages)
		v1.POST("/analyze/scene", h.analyzeScene)
		v1.POST("/analyze/document", h.analyzeDocument)
		v1.POST("/conversation/turns", h.submitTurn)
		v1.GET("/conversation/turns", h.listTurns)
		v1.PUT("/conversation/languages", h.setLanguages)
		v1.POST("/ask", h.askQuestion)
		v1.POST("/speak", h.speak)
		v1.GET("/document/export", h.exportDocument)
	}

	return r
}

func (h *Handler) analyzeScene(c *gin.Context) {
	startTime := time.Now()

	var req models.SceneAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request format", err)
		return
	}

	image, err := h.resolveImage(c.Request.Context(), req.ImageBase64, req.ImageURL)
	if err != nil {
		respondError(c, apperrors.GetStatusCode(err), "could not obtain camera frame", err)
		return
	}

	result, err := h.service.AnalyzeScene(c.Request.Context(), image, targetOrDefault(req.TargetLanguage))
	if err != nil {
		// Prior state stays untouched on any failure
		respondError(c, apperrors.GetStatusCode(err), "scene analysis failed", err)
		return
	}

	h.view.SetFrame(image)
	h.view.SetScene(result)

	logger.WithFields(logrus.Fields{
		"processing_time_ms": time.Since(startTime).Milliseconds(),
		"detected_texts":     len(result.DetectedTexts),
		"structured":         result.UseStructuredView(),
	}).Info("Scene analysis completed")

	c.JSON(http.StatusOK, result)
}

func (h *Handler) analyzeDocument(c *gin.Context) {
	startTime := time.Now()

	var req models.DocumentAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request format", err)
		return
	}

	image, err := h.resolveImage(c.Request.Context(), req.ImageBase64, req.ImageURL)
	if err != nil {
		respondError(c, apperrors.GetStatusCode(err), "could not obtain document image", err)
		return
	}

	result, err := h.service.AnalyzeDocument(c.Request.Context(), image, targetOrDefault(req.TargetLanguage))
	if err != nil {
		respondError(c, apperrors.GetStatusCode(err), "document analysis failed", err)
		return
	}

	h.view.SetDocument(result)

	logger.WithFields(logrus.Fields{
		"processing_time_ms": time.Since(startTime).Milliseconds(),
		"document_type":      result.DocumentType,
		"key_sections":       len(result.KeySections),
	}).Info("Document analysis completed")

	c.JSON(http.StatusOK, result)
}

func (h *Handler) submitTurn(c *gin.Context) {
	var req models.TurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request format", err)
		return
	}

	turn := h.pipeline.OnTranscript(c.Request.Context(), conversation.Speaker(req.Speaker), req.Transcript)
	c.JSON(http.StatusAccepted, turn)
}

func (h *Handler) listTurns(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"turns": h.pipeline.Session().Turns()})
}

func (h *Handler) setLanguages(c *gin.Context) {
	var req models.LanguagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request format", err)
		return
	}

	langA, okA := catalog.ByName(req.SpeakerA)
	langB, okB := catalog.ByName(req.SpeakerB)
	if !okA || !okB {
		respondError(c, http.StatusBadRequest, "unsupported language",
			apperrors.NewValidationError(fmt.Sprintf("unknown language in %q/%q", req.SpeakerA, req.SpeakerB), nil))
		return
	}

	h.pipeline.Session().SetLanguages(langA, langB)
	c.Status(http.StatusNoContent)
}

func (h *Handler) askQuestion(c *gin.Context) {
	var req models.QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request format", err)
		return
	}

	sceneCtx := h.view.Scene()
	var frame []byte
	if sceneCtx == nil {
		var err error
		frame, err = h.resolveImage(c.Request.Context(), req.ImageBase64, "")
		if err != nil && req.ImageBase64 != "" {
			respondError(c, apperrors.GetStatusCode(err), "could not decode image", err)
			return
		}
		if frame == nil {
			frame = h.view.Frame()
		}
	}

	answer, err := h.service.AnswerQuestion(c.Request.Context(), req.Question, sceneCtx, frame)
	if err != nil {
		respondError(c, apperrors.GetStatusCode(err), "question failed", err)
		return
	}
	c.JSON(http.StatusOK, models.QuestionResponse{Answer: answer})
}

func (h *Handler) speak(c *gin.Context) {
	var req models.SpeakRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request format", err)
		return
	}

	// Best-effort: playback runs in the background and never reports
	// failure to the caller
	h.speech.SpeakAsync(c.Request.Context(), req.Text, req.Language, req.Locale)
	c.Status(http.StatusAccepted)
}

func (h *Handler) exportDocument(c *gin.Context) {
	result := h.view.Document()
	if result == nil {
		respondError(c, http.StatusNotFound, "no document analysis available",
			apperrors.NewNotFoundError("nothing to export"))
		return
	}

	body := []byte(result.FullTranslation)

	if h.artifacts != nil {
		if _, err := h.artifacts.Upload(c.Request.Context(), ExportFileName, body); err != nil {
			logger.WithError(err).Warn("Artifact upload failed")
		}
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ExportFileName))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", body)
}

func listLanguages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"languages": catalog.Supported()})
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "available",
		"version": "1.0.0",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// resolveImage turns the request's inline base64 or URL into normalized
// JPEG bytes. Returns nil when neither is provided; the builder decides
// whether that is a capture failure for the task at hand.
func (h *Handler) resolveImage(ctx context.Context, imageBase64, imageURL string) ([]byte, error) {
	switch {
	case imageBase64 != "":
		cleaned := dataURIPrefix.ReplaceAllString(imageBase64, "")
		data, err := base64.StdEncoding.DecodeString(cleaned)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid base64 image payload", err)
		}
		normalized, err := storage.NormalizeJPEG(data)
		if err != nil {
			return nil, apperrors.NewValidationError("unsupported image payload", err)
		}
		return normalized, nil
	case imageURL != "":
		data, err := h.fetcher.FetchImage(ctx, imageURL)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return nil, apperrors.NewTimeoutError("image fetch timed out", err)
			}
			return nil, apperrors.NewRemoteCallFailedError("failed to fetch image", err)
		}
		return data, nil
	default:
		return nil, nil
	}
}

func targetOrDefault(language string) string {
	if language == "" {
		return catalog.Default().Name
	}
	return language
}

// Middleware and helper functions
func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func respondError(c *gin.Context, code int, message string, err error) {
	logger.WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"message":     message,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
	}).Error("Request failed")

	c.AbortWithStatusJSON(code, models.ErrorResponse{
		Error:   http.StatusText(code),
		Message: fmt.Sprintf("%s: %v", message, err),
	})
}
