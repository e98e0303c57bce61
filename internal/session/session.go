// Package session holds per-view mutable state: the latest captured
// frame and the last analysis results. Results are owned exclusively by
// the view that requested them; failed operations leave prior state
// untouched.
package session

import (
	"sync"

	"go-translation-lens/pkg/models"
)

// ViewState is the session state behind the camera and document views
type ViewState struct {
	mu           sync.RWMutex
	lastFrame    []byte
	lastScene    *models.SceneAnalysisResult
	lastDocument *models.DocumentAnalysisResult
}

// NewViewState creates empty view state
func NewViewState() *ViewState {
	return &ViewState{}
}

// SetFrame stores the latest captured frame
func (v *ViewState) SetFrame(frame []byte) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lastFrame = frame
}

// Frame returns the latest captured frame, or nil
func (v *ViewState) Frame() []byte {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.lastFrame
}

// SetScene stores a successful scene analysis result
func (v *ViewState) SetScene(result *models.SceneAnalysisResult) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lastScene = result
}

// Scene returns the last scene analysis result, or nil
func (v *ViewState) Scene() *models.SceneAnalysisResult {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.lastScene
}

// SetDocument stores a successful document analysis result
func (v *ViewState) SetDocument(result *models.DocumentAnalysisResult) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lastDocument = result
}

// Document returns the last document analysis result, or nil
func (v *ViewState) Document() *models.DocumentAnalysisResult {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.lastDocument
}
