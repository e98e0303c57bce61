package gemini

import "google.golang.org/genai"

// Response schemas constraining analysis replies. These are the contract
// between the instruction templates and the normalizer: field names, types
// and enum values here must match both sides exactly.

// StructuredOutputSchema describes the optional tabular/menu extraction
// shared by scene and document analysis
func StructuredOutputSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"type":  {Type: genai.TypeString, Enum: []string{"MENU", "TABLE", "STANDARD"}},
			"title": {Type: genai.TypeString},
			"sections": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"title": {Type: genai.TypeString},
						"items": {
							Type: genai.TypeArray,
							Items: &genai.Schema{
								Type: genai.TypeObject,
								Properties: map[string]*genai.Schema{
									"label":       {Type: genai.TypeString},
									"value":       {Type: genai.TypeString},
									"description": {Type: genai.TypeString},
									"original":    {Type: genai.TypeString},
								},
							},
						},
					},
				},
			},
		},
	}
}

// SceneAnalysisSchema constrains camera frame analysis replies
func SceneAnalysisSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"detectedTexts": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"original":      {Type: genai.TypeString},
						"language":      {Type: genai.TypeString},
						"translation":   {Type: genai.TypeString},
						"context":       {Type: genai.TypeString},
						"culturalNotes": {Type: genai.TypeString},
						"pronunciation": {Type: genai.TypeString},
					},
				},
			},
			"sceneContext": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"english":    {Type: genai.TypeString},
					"translated": {Type: genai.TypeString},
				},
			},
			"suggestions":      {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"searchQueries":    {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"structuredOutput": StructuredOutputSchema(),
		},
	}
}

// DocumentAnalysisSchema constrains document analysis replies
func DocumentAnalysisSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"detectedLanguage": {Type: genai.TypeString},
			"documentType":     {Type: genai.TypeString},
			"summary":          {Type: genai.TypeString},
			"fullTranslation":  {Type: genai.TypeString},
			"keySections": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"title":       {Type: genai.TypeString},
						"content":     {Type: genai.TypeString},
						"explanation": {Type: genai.TypeString},
					},
				},
			},
			"warnings":         {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"actionItems":      {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"structuredOutput": StructuredOutputSchema(),
		},
	}
}
