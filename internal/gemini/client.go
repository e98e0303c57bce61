package gemini

import (
	"context"

	"google.golang.org/genai"

	apperrors "go-translation-lens/internal/errors"
	"go-translation-lens/internal/logger"

	"github.com/sirupsen/logrus"
)

// Blob is an inline binary payload with its mime type
type Blob struct {
	MIMEType string
	Data     []byte
}

// Part is one ordered element of the request content: text or inline binary
type Part struct {
	Text       string
	InlineData *Blob
}

// GenerateRequest is a fully-specified call against the remote model
type GenerateRequest struct {
	Model string
	Parts []Part

	// ResponseSchema constrains the reply to schema-conformant JSON.
	// Nil means free text.
	ResponseSchema *genai.Schema

	// ThinkingBudget hints how many reasoning tokens the model may spend
	ThinkingBudget *int32

	// AudioOutput requests inline audio instead of text (speech tasks)
	AudioOutput bool
	Voice       string
}

// GenerateResponse carries either reply text or an inline audio payload
type GenerateResponse struct {
	Text          string
	Audio         []byte
	AudioMIMEType string
}

// Client is the narrow surface the orchestration layer uses to call the model
type Client interface {
	GenerateContent(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}

type geminiClient struct {
	api *genai.Client
}

// NewClient creates a Client backed by the Gemini API
func NewClient(ctx context.Context, apiKey string) (Client, error) {
	api, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, apperrors.NewInternalError("failed to initialize gemini client", err)
	}
	return &geminiClient{api: api}, nil
}

func (c *geminiClient) GenerateContent(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	parts := make([]*genai.Part, 0, len(req.Parts))
	for _, p := range req.Parts {
		if p.InlineData != nil {
			parts = append(parts, &genai.Part{InlineData: &genai.Blob{
				MIMEType: p.InlineData.MIMEType,
				Data:     p.InlineData.Data,
			}})
			continue
		}
		parts = append(parts, &genai.Part{Text: p.Text})
	}

	cfg := &genai.GenerateContentConfig{}
	if req.ResponseSchema != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = req.ResponseSchema
	}
	if req.ThinkingBudget != nil {
		cfg.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: req.ThinkingBudget}
	}
	if req.AudioOutput {
		cfg.ResponseModalities = []string{"AUDIO"}
		cfg.SpeechConfig = &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: req.Voice},
			},
		}
	}

	resp, err := c.api.Models.GenerateContent(ctx, req.Model, []*genai.Content{{Parts: parts}}, cfg)
	if err != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"model": req.Model,
			"audio": req.AudioOutput,
		}).Error("Gemini call failed")
		return nil, apperrors.NewRemoteCallFailedError("model call failed", err)
	}

	out := &GenerateResponse{}
	if req.AudioOutput {
		out.Audio, out.AudioMIMEType = firstInlineAudio(resp)
		if len(out.Audio) == 0 {
			return nil, apperrors.NewMalformedResponseError("no audio data in model reply", nil)
		}
		return out, nil
	}

	out.Text = resp.Text()
	if out.Text == "" {
		return nil, apperrors.NewMalformedResponseError("empty model reply", nil)
	}
	return out, nil
}

func firstInlineAudio(resp *genai.GenerateContentResponse) ([]byte, string) {
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data, part.InlineData.MIMEType
			}
		}
	}
	return nil, ""
}
