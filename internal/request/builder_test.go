package request

import (
	"fmt"
	"strings"
	"testing"

	apperrors "go-translation-lens/internal/errors"
	"go-translation-lens/pkg/models"
)

var testImage = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x01, 0x02}

func TestSceneAnalysis_MissingImage(t *testing.T) {
	b := NewBuilder("gemini-2.5-flash")
	_, err := b.SceneAnalysis(nil, "Spanish")
	if err == nil {
		t.Fatal("Expected error for missing image")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeCaptureUnavailable) {
		t.Errorf("Expected capture_unavailable, got %v", err)
	}
}

func TestSceneAnalysis_RequestShape(t *testing.T) {
	b := NewBuilder("gemini-2.5-flash")
	req, err := b.SceneAnalysis(testImage, "French")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if req.Model != "gemini-2.5-flash" {
		t.Errorf("Model = %q", req.Model)
	}
	if len(req.Parts) != 2 {
		t.Fatalf("Expected 2 parts (image + instruction), got %d", len(req.Parts))
	}
	if req.Parts[0].InlineData == nil || req.Parts[0].InlineData.MIMEType != "image/jpeg" {
		t.Error("First part must be the inline JPEG frame")
	}
	if req.ResponseSchema == nil {
		t.Error("Scene analysis must carry a response schema")
	}
	if req.ThinkingBudget == nil || *req.ThinkingBudget != 2048 {
		t.Error("Scene analysis must set the thinking budget")
	}
	if !strings.Contains(req.Parts[1].Text, "Target Language: French") {
		t.Error("Instruction must name the target language")
	}
}

// The instruction text declares the same schema the parser expects; if
// either drifts, replies stop being parseable.
func TestSceneAnalysis_PromptDeclaresSchemaFields(t *testing.T) {
	b := NewBuilder("gemini-2.5-flash")
	req, _ := b.SceneAnalysis(testImage, "English")
	prompt := req.Parts[1].Text

	for _, field := range []string{
		"detectedTexts", "sceneContext", "suggestions", "searchQueries",
		"structuredOutput", `"MENU" | "TABLE" | "STANDARD"`,
	} {
		if !strings.Contains(prompt, field) {
			t.Errorf("Scene prompt missing schema element %q", field)
		}
	}
}

func TestDocumentAnalysis_PromptDeclaresSchemaFields(t *testing.T) {
	b := NewBuilder("gemini-2.5-flash")
	req, err := b.DocumentAnalysis(testImage, "German")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	prompt := req.Parts[1].Text

	for _, field := range []string{
		"detectedLanguage", "documentType", "summary", "fullTranslation",
		"keySections", "warnings", "actionItems", "structuredOutput",
	} {
		if !strings.Contains(prompt, field) {
			t.Errorf("Document prompt missing schema element %q", field)
		}
	}
	if req.ResponseSchema == nil {
		t.Error("Document analysis must carry a response schema")
	}
}

func TestConversationTranslation_HistoryCap(t *testing.T) {
	b := NewBuilder("gemini-2.5-flash")

	var history []HistoryEntry
	for i := 1; i <= 8; i++ {
		history = append(history, HistoryEntry{Language: "English", Original: fmt.Sprintf("utterance %d", i)})
	}

	req, err := b.ConversationTranslation("hello", "English", "Spanish", history)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	prompt := req.Parts[0].Text

	// Only the most recent 5 prior turns are included
	for i := 4; i <= 8; i++ {
		if !strings.Contains(prompt, fmt.Sprintf("utterance %d", i)) {
			t.Errorf("Expected utterance %d in history", i)
		}
	}
	for i := 1; i <= 3; i++ {
		if strings.Contains(prompt, fmt.Sprintf("utterance %d", i)) {
			t.Errorf("Utterance %d should have been dropped from history", i)
		}
	}
	if req.ResponseSchema != nil {
		t.Error("Conversation translation must not carry a response schema")
	}
}

func TestConversationTranslation_EmptyText(t *testing.T) {
	b := NewBuilder("gemini-2.5-flash")
	if _, err := b.ConversationTranslation("  ", "English", "Spanish", nil); err == nil {
		t.Fatal("Expected error for blank utterance")
	}
}

func TestContextualQuestion_UsesSceneContext(t *testing.T) {
	b := NewBuilder("gemini-2.5-flash")
	sceneCtx := &models.SceneAnalysisResult{
		SceneContext: &models.SceneContext{English: "a busy market", Translated: "un mercado concurrido"},
	}

	req, err := b.ContextualQuestion("what is this?", sceneCtx, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(req.Parts) != 1 {
		t.Fatalf("Expected a single text part when context exists, got %d", len(req.Parts))
	}
	if !strings.Contains(req.Parts[0].Text, "a busy market") {
		t.Error("Serialized scene context missing from prompt")
	}
	if !strings.Contains(req.Parts[0].Text, "max 2 sentences") {
		t.Error("Prompt must request a concise answer")
	}
}

func TestContextualQuestion_FallsBackToImage(t *testing.T) {
	b := NewBuilder("gemini-2.5-flash")

	req, err := b.ContextualQuestion("what is this?", nil, testImage)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(req.Parts) != 2 || req.Parts[0].InlineData == nil {
		t.Error("Expected inline image part when no scene context exists")
	}
}

func TestContextualQuestion_NoContextNoImage(t *testing.T) {
	b := NewBuilder("gemini-2.5-flash")
	_, err := b.ContextualQuestion("what is this?", nil, nil)
	if !apperrors.IsType(err, apperrors.ErrorTypeCaptureUnavailable) {
		t.Errorf("Expected capture_unavailable, got %v", err)
	}
}
