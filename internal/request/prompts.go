package request

import "fmt"

// Instruction templates sent alongside each request. The JSON layout
// declared here mirrors the response schemas in internal/gemini exactly;
// the two must never drift apart.

const sceneAnalysisPrompt = `
Analyze this image.
1. Determine the visual structure: Is it a Menu, a Price List, a Schedule, or General Text?
2. If it is a Menu or List, extract the data structurally.
3. Identify all visible text, detect source language, and translate.
4. Provide context and cultural notes.

Format response as valid JSON ONLY:
{
  "detectedTexts": [{
    "original": "string",
    "language": "string",
    "translation": "string",
    "context": "string",
    "culturalNotes": "string",
    "pronunciation": "string"
  }],
  "sceneContext": {
     "english": "string",
     "translated": "string"
  },
  "suggestions": ["string"],
  "searchQueries": ["string"],
  "structuredOutput": {
     "type": "MENU" | "TABLE" | "STANDARD",
     "title": "string (e.g. Restaurant Name or Main Title)",
     "sections": [
        {
           "title": "string (e.g. Appetizers, Drinks)",
           "items": [
              {
                 "label": "string (Translated Name)",
                 "value": "string (Price or Value)",
                 "description": "string (Brief description or original text if needed)",
                 "original": "string (Original source text)"
              }
           ]
        }
     ]
  }
}
`

const documentAnalysisPrompt = `
This is a document image.
Analyze its structure and content.

Format as valid JSON ONLY:
{
  "detectedLanguage": "string",
  "documentType": "string",
  "summary": "string",
  "fullTranslation": "string",
  "keySections": [{
    "title": "string",
    "content": "string",
    "explanation": "string"
  }],
  "warnings": ["string"],
  "actionItems": ["string"],
  "structuredOutput": {
     "type": "MENU" | "TABLE" | "STANDARD",
     "title": "string",
     "sections": [
        {
           "title": "string",
           "items": [
              {
                 "label": "string",
                 "value": "string",
                 "description": "string",
                 "original": "string"
              }
           ]
        }
     ]
  }
}
`

func conversationPrompt(sourceLang, targetLang, history, newInput string) string {
	return fmt.Sprintf(`
Act as a real-time translator between %s and %s.

Conversation History:
%s

New Input (%s): %q

Task: Translate the new input to %s.
Maintain conversational flow, tone, and cultural nuance.
Return ONLY the translation text.
`, sourceLang, targetLang, history, sourceLang, newInput, targetLang)
}
