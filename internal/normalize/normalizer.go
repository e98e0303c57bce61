// Package normalize turns raw model reply text into typed results,
// tolerant of partial conformance. Missing required fields fail with
// MalformedResponse; absent optional sub-objects and empty arrays are
// valid results.
package normalize

import (
	"encoding/json"
	"strings"

	apperrors "go-translation-lens/internal/errors"
	"go-translation-lens/pkg/models"
)

// SceneResult parses a scene analysis reply. sceneContext is required;
// all arrays default to empty.
func SceneResult(raw string) (*models.SceneAnalysisResult, error) {
	var result models.SceneAnalysisResult
	if err := decodeStrict(raw, &result); err != nil {
		return nil, apperrors.NewMalformedResponseError("scene analysis reply is not valid JSON", err)
	}
	if result.SceneContext == nil {
		return nil, apperrors.NewMalformedResponseError("scene analysis reply missing sceneContext", nil)
	}
	if result.DetectedTexts == nil {
		result.DetectedTexts = []models.DetectedText{}
	}
	if result.Suggestions == nil {
		result.Suggestions = []string{}
	}
	if result.SearchQueries == nil {
		result.SearchQueries = []string{}
	}
	normalizeStructured(result.StructuredOutput)
	return &result, nil
}

// DocumentResult parses a document analysis reply. detectedLanguage,
// summary and fullTranslation are required.
func DocumentResult(raw string) (*models.DocumentAnalysisResult, error) {
	var result models.DocumentAnalysisResult
	if err := decodeStrict(raw, &result); err != nil {
		return nil, apperrors.NewMalformedResponseError("document analysis reply is not valid JSON", err)
	}
	if result.DetectedLanguage == "" || result.Summary == "" || result.FullTranslation == "" {
		return nil, apperrors.NewMalformedResponseError("document analysis reply missing required fields", nil)
	}
	if result.KeySections == nil {
		result.KeySections = []models.KeySection{}
	}
	if result.Warnings == nil {
		result.Warnings = []string{}
	}
	if result.ActionItems == nil {
		result.ActionItems = []string{}
	}
	normalizeStructured(result.StructuredOutput)
	return &result, nil
}

// Translation passes conversation replies through as-is; they are raw
// text by contract. Only a blank reply is rejected.
func Translation(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", apperrors.NewMalformedResponseError("empty translation reply", nil)
	}
	return text, nil
}

// normalizeStructured folds unknown or absent type values into STANDARD
// so the rendering path selection stays a closed decision
func normalizeStructured(s *models.StructuredOutput) {
	if s == nil {
		return
	}
	switch s.Type {
	case models.StructuredMenu, models.StructuredTable, models.StructuredStandard:
	default:
		s.Type = models.StructuredStandard
	}
	if s.Sections == nil {
		s.Sections = []models.StructuredSection{}
	}
}

// decodeStrict unmarshals a reply whose top level must be a JSON object;
// anything else (prose, a bare string) fails the decode
func decodeStrict(raw string, v interface{}) error {
	trimmed := strings.TrimSpace(raw)
	dec := json.NewDecoder(strings.NewReader(trimmed))
	return dec.Decode(v)
}
