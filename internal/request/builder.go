// Package request constructs fully-specified multimodal requests against
// the remote model, one per task kind. Scene and document requests carry
// a response schema so the reply is directly parseable; conversation and
// contextual questions are free text.
package request

import (
	"encoding/json"
	"fmt"
	"strings"

	apperrors "go-translation-lens/internal/errors"
	"go-translation-lens/internal/gemini"
	"go-translation-lens/pkg/models"
)

// TaskKind identifies the four request shapes the service issues
type TaskKind string

const (
	TaskSceneAnalysis           TaskKind = "scene_analysis"
	TaskDocumentAnalysis        TaskKind = "document_analysis"
	TaskConversationTranslation TaskKind = "conversation_translation"
	TaskContextualQuestion      TaskKind = "contextual_question"
)

// MaxHistoryTurns caps how many prior exchanges are embedded as
// conversation context
const MaxHistoryTurns = 5

// thinkingBudget lets the model reason about visual structure (Menu vs Text)
const thinkingBudget int32 = 2048

// HistoryEntry is one prior exchange embedded as plain-text context
type HistoryEntry struct {
	Language string
	Original string
}

// Builder produces model requests for a fixed model identifier
type Builder struct {
	model string
}

// NewBuilder creates a request builder targeting the given model
func NewBuilder(model string) *Builder {
	return &Builder{model: model}
}

// SceneAnalysis builds a camera frame analysis request. The frame must be
// JPEG-encoded; a missing frame fails with CaptureUnavailable before any
// network call is attempted.
func (b *Builder) SceneAnalysis(image []byte, targetLanguage string) (gemini.GenerateRequest, error) {
	if len(image) == 0 {
		return gemini.GenerateRequest{}, apperrors.NewCaptureUnavailableError("no camera frame available")
	}
	budget := thinkingBudget
	return gemini.GenerateRequest{
		Model: b.model,
		Parts: []gemini.Part{
			{InlineData: &gemini.Blob{MIMEType: "image/jpeg", Data: image}},
			{Text: fmt.Sprintf("%s \n Target Language: %s", sceneAnalysisPrompt, targetLanguage)},
		},
		ResponseSchema: gemini.SceneAnalysisSchema(),
		ThinkingBudget: &budget,
	}, nil
}

// DocumentAnalysis builds a document analysis request
func (b *Builder) DocumentAnalysis(image []byte, targetLanguage string) (gemini.GenerateRequest, error) {
	if len(image) == 0 {
		return gemini.GenerateRequest{}, apperrors.NewCaptureUnavailableError("no document image available")
	}
	budget := thinkingBudget
	return gemini.GenerateRequest{
		Model: b.model,
		Parts: []gemini.Part{
			{InlineData: &gemini.Blob{MIMEType: "image/jpeg", Data: image}},
			{Text: fmt.Sprintf("%s \n Target Language: %s", documentAnalysisPrompt, targetLanguage)},
		},
		ResponseSchema: gemini.DocumentAnalysisSchema(),
		ThinkingBudget: &budget,
	}, nil
}

// ConversationTranslation builds a strict translate-only request. At most
// the last MaxHistoryTurns entries of history are embedded; the reply is
// raw text with no JSON wrapping.
func (b *Builder) ConversationTranslation(text, sourceLang, targetLang string, history []HistoryEntry) (gemini.GenerateRequest, error) {
	if strings.TrimSpace(text) == "" {
		return gemini.GenerateRequest{}, apperrors.NewValidationError("utterance text is required", nil)
	}
	if len(history) > MaxHistoryTurns {
		history = history[len(history)-MaxHistoryTurns:]
	}
	lines := make([]string, 0, len(history))
	for _, h := range history {
		lines = append(lines, fmt.Sprintf("%s: %s", h.Language, h.Original))
	}
	return gemini.GenerateRequest{
		Model: b.model,
		Parts: []gemini.Part{
			{Text: conversationPrompt(sourceLang, targetLang, strings.Join(lines, "\n"), text)},
		},
	}, nil
}

// ContextualQuestion builds a scene Q&A request. The last scene analysis
// result is serialized as context when present; otherwise a freshly
// captured frame is embedded instead.
func (b *Builder) ContextualQuestion(question string, sceneCtx *models.SceneAnalysisResult, image []byte) (gemini.GenerateRequest, error) {
	if strings.TrimSpace(question) == "" {
		return gemini.GenerateRequest{}, apperrors.NewValidationError("question text is required", nil)
	}

	var parts []gemini.Part
	if sceneCtx == nil {
		if len(image) == 0 {
			return gemini.GenerateRequest{}, apperrors.NewCaptureUnavailableError("no scene context or camera frame available")
		}
		parts = append(parts, gemini.Part{InlineData: &gemini.Blob{MIMEType: "image/jpeg", Data: image}})
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "User Question: %q\n\n", question)
	if sceneCtx != nil {
		serialized, err := json.Marshal(sceneCtx)
		if err != nil {
			return gemini.GenerateRequest{}, apperrors.NewInternalError("failed to serialize scene context", err)
		}
		fmt.Fprintf(&sb, "Context (Previously analyzed data): %s\n\n", serialized)
	}
	sb.WriteString("Provide a natural, helpful, and conversational response (max 2 sentences) based on the image/context provided.")

	parts = append(parts, gemini.Part{Text: sb.String()})
	return gemini.GenerateRequest{Model: b.model, Parts: parts}, nil
}
