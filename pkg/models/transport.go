package models

// SceneAnalysisRequest asks for analysis of a captured camera frame.
// Exactly one of ImageBase64 or ImageURL should be set.
type SceneAnalysisRequest struct {
	ImageBase64    string `json:"image_base64,omitempty"`
	ImageURL       string `json:"image_url,omitempty"`
	TargetLanguage string `json:"target_language,omitempty"`
}

// DocumentAnalysisRequest asks for analysis of an uploaded document image
type DocumentAnalysisRequest struct {
	ImageBase64    string `json:"image_base64,omitempty"`
	ImageURL       string `json:"image_url,omitempty"`
	TargetLanguage string `json:"target_language,omitempty"`
}

// TurnRequest submits one captured utterance for a conversation speaker
type TurnRequest struct {
	Speaker    string `json:"speaker" binding:"required,oneof=A B"`
	Transcript string `json:"transcript" binding:"required"`
}

// LanguagesRequest updates the two party languages of the conversation session
type LanguagesRequest struct {
	SpeakerA string `json:"speaker_a" binding:"required"`
	SpeakerB string `json:"speaker_b" binding:"required"`
}

// QuestionRequest asks a contextual question about the analyzed scene.
// ImageBase64 is used only when no prior scene analysis exists.
type QuestionRequest struct {
	Question    string `json:"question" binding:"required"`
	ImageBase64 string `json:"image_base64,omitempty"`
}

// QuestionResponse carries the conversational answer
type QuestionResponse struct {
	Answer string `json:"answer"`
}

// SpeakRequest asks for best-effort speech playback of a translated string
type SpeakRequest struct {
	Text     string `json:"text" binding:"required"`
	Language string `json:"language" binding:"required"`
	Locale   string `json:"locale,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
