package models

// StructuredKind classifies the visual layout the model extracted
type StructuredKind string

const (
	StructuredMenu     StructuredKind = "MENU"
	StructuredTable    StructuredKind = "TABLE"
	StructuredStandard StructuredKind = "STANDARD"
)

// DetectedText represents one recognized text fragment in a scene
// Field names follow the response schema sent to the model, so these
// structs unmarshal the reply directly
type DetectedText struct {
	Original      string `json:"original"`
	Language      string `json:"language"`
	Translation   string `json:"translation"`
	Context       string `json:"context"`
	CulturalNotes string `json:"culturalNotes,omitempty"`
	Pronunciation string `json:"pronunciation,omitempty"`
}

// SceneContext holds the scene-level summary in both English and the target language
type SceneContext struct {
	English    string `json:"english"`
	Translated string `json:"translated"`
}

// StructuredItem is one labeled entry inside a structured section
type StructuredItem struct {
	Label       string `json:"label"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
	Original    string `json:"original,omitempty"`
}

// StructuredSection groups items under a section title (e.g. Appetizers, Drinks)
type StructuredSection struct {
	Title string           `json:"title"`
	Items []StructuredItem `json:"items"`
}

// StructuredOutput is the optional tabular/menu-shaped extraction.
// Present only when the model judges the source visually tabular.
type StructuredOutput struct {
	Type     StructuredKind      `json:"type"`
	Title    string              `json:"title,omitempty"`
	Sections []StructuredSection `json:"sections"`
}

// IsTabular reports whether the output carries a renderable table or menu
func (s *StructuredOutput) IsTabular() bool {
	return s != nil && (s.Type == StructuredMenu || s.Type == StructuredTable)
}

// SceneAnalysisResult is the typed result of analyzing a camera frame
type SceneAnalysisResult struct {
	DetectedTexts    []DetectedText    `json:"detectedTexts"`
	SceneContext     *SceneContext     `json:"sceneContext"`
	Suggestions      []string          `json:"suggestions"`
	SearchQueries    []string          `json:"searchQueries"`
	StructuredOutput *StructuredOutput `json:"structuredOutput,omitempty"`
}

// UseStructuredView reports whether the UI should render the structured
// table/menu view. When false the detected-texts view is used; the two
// are mutually exclusive for a single result.
func (r *SceneAnalysisResult) UseStructuredView() bool {
	return r.StructuredOutput.IsTabular()
}

// KeySection is one highlighted portion of an analyzed document
type KeySection struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	Explanation string `json:"explanation"`
}

// DocumentAnalysisResult is the typed result of analyzing a document image
type DocumentAnalysisResult struct {
	DetectedLanguage string            `json:"detectedLanguage"`
	DocumentType     string            `json:"documentType"`
	Summary          string            `json:"summary"`
	FullTranslation  string            `json:"fullTranslation"`
	KeySections      []KeySection      `json:"keySections"`
	Warnings         []string          `json:"warnings"`
	ActionItems      []string          `json:"actionItems"`
	StructuredOutput *StructuredOutput `json:"structuredOutput,omitempty"`
}

// UseStructuredView reports whether the structured view should be rendered
// instead of the key-sections view. A STANDARD structured output with no
// key sections falls back to the summary-only empty state.
func (r *DocumentAnalysisResult) UseStructuredView() bool {
	return r.StructuredOutput.IsTabular()
}
