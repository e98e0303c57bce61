package transport

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"go-translation-lens/internal/catalog"
	"go-translation-lens/internal/config"
	"go-translation-lens/internal/conversation"
	"go-translation-lens/internal/gemini"
	"go-translation-lens/internal/observer"
	"go-translation-lens/internal/request"
	"go-translation-lens/internal/service"
	"go-translation-lens/internal/session"
	"go-translation-lens/internal/speech"
	"go-translation-lens/pkg/models"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

// fakeModel serves canned replies in submission order so one test can
// script a success followed by a malformed reply
type fakeModel struct {
	mu      sync.Mutex
	replies []string
	errs    []error
	calls   int
}

func (f *fakeModel) GenerateContent(ctx context.Context, req gemini.GenerateRequest) (*gemini.GenerateResponse, error) {
	// Speech synthesis calls do not consume the scripted text replies
	if req.AudioOutput {
		return &gemini.GenerateResponse{Audio: []byte{0x00, 0x00}, AudioMIMEType: "audio/pcm"}, nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	reply := ""
	if i < len(f.replies) {
		reply = f.replies[i]
	}
	return &gemini.GenerateResponse{Text: reply}, nil
}

type testEnv struct {
	handler http.Handler
	model   *fakeModel
	view    *session.ViewState
	pool    *conversation.WorkerPool
	session *conversation.Session
}

func newTestEnv(t *testing.T, replies []string, errs []error) *testEnv {
	t.Helper()

	model := &fakeModel{replies: replies, errs: errs}
	builder := request.NewBuilder("gemini-2.5-flash")
	events := observer.NewEventPublisher()
	svc := service.NewTranslationService(builder, model, events, 5*time.Second)

	english, _ := catalog.ByName("English")
	spanish, _ := catalog.ByName("Spanish")
	sess := conversation.NewSession(english, spanish)
	pool := conversation.NewWorkerPool(1)
	orchestrator := speech.NewOrchestrator(speech.NewNullSynthesizer(), model, speech.NewLoggingPlayer(), "gemini-2.5-flash-preview-tts", "Kore")
	pipeline := conversation.NewPipeline(sess, svc, orchestrator, pool)
	view := session.NewViewState()

	cfg := &config.Config{MaxRequestBodySize: 20 << 20}
	handler := NewHandler(svc, pipeline, orchestrator, view, nil, nil, cfg)

	t.Cleanup(pool.Close)
	return &testEnv{handler: handler, model: model, view: view, pool: pool, session: sess}
}

func (e *testEnv) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)
	return w
}

var testFrameBase64 = base64.StdEncoding.EncodeToString([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0x01, 0x02})

const validDocumentReply = `{
	"detectedLanguage": "Spanish",
	"documentType": "Letter",
	"summary": "A greeting",
	"fullTranslation": "Hola mundo",
	"keySections": [],
	"warnings": [],
	"actionItems": []
}`

const validSceneReply = `{
	"detectedTexts": [{"original": "salida", "language": "Spanish", "translation": "exit", "context": "sign"}],
	"sceneContext": {"english": "An airport corridor", "translated": "Un pasillo de aeropuerto"},
	"suggestions": [],
	"searchQueries": []
}`

func TestListLanguages(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	w := env.do(http.MethodGet, "/v1/languages", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d", w.Code)
	}
	var body struct {
		Languages []catalog.Language `json:"languages"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Response not parseable: %v", err)
	}
	if len(body.Languages) != 13 || body.Languages[0].Code != "en-US" {
		t.Errorf("Languages = %+v", body.Languages)
	}
}

func TestHealthCheck(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	w := env.do(http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Errorf("Status = %d, want 200", w.Code)
	}
}

func TestAnalyzeScene_Success(t *testing.T) {
	env := newTestEnv(t, []string{validSceneReply}, nil)

	w := env.do(http.MethodPost, "/v1/analyze/scene", models.SceneAnalysisRequest{
		ImageBase64:    testFrameBase64,
		TargetLanguage: "English",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, body = %s", w.Code, w.Body.String())
	}
	var result models.SceneAnalysisResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("Response not parseable: %v", err)
	}
	if len(result.DetectedTexts) != 1 || result.DetectedTexts[0].Translation != "exit" {
		t.Errorf("DetectedTexts = %+v", result.DetectedTexts)
	}
	if env.view.Scene() == nil || env.view.Frame() == nil {
		t.Error("Successful analysis must record the scene and frame")
	}
}

func TestAnalyzeScene_DataURIPrefixStripped(t *testing.T) {
	env := newTestEnv(t, []string{validSceneReply}, nil)

	w := env.do(http.MethodPost, "/v1/analyze/scene", models.SceneAnalysisRequest{
		ImageBase64: "data:image/jpeg;base64," + testFrameBase64,
	})
	if w.Code != http.StatusOK {
		t.Errorf("Status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestAnalyzeScene_MissingImage(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	w := env.do(http.MethodPost, "/v1/analyze/scene", models.SceneAnalysisRequest{
		TargetLanguage: "English",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want 400 capture unavailable", w.Code)
	}
	if env.model.calls != 0 {
		t.Error("No model call should be made without a frame")
	}
}

func TestAnalyzeScene_MalformedReplyPreservesPriorState(t *testing.T) {
	env := newTestEnv(t, []string{validSceneReply, "sorry, no JSON today"}, nil)

	if w := env.do(http.MethodPost, "/v1/analyze/scene", models.SceneAnalysisRequest{ImageBase64: testFrameBase64}); w.Code != http.StatusOK {
		t.Fatalf("Setup call failed: %d", w.Code)
	}
	before := env.view.Scene()

	w := env.do(http.MethodPost, "/v1/analyze/scene", models.SceneAnalysisRequest{ImageBase64: testFrameBase64})
	if w.Code != http.StatusBadGateway {
		t.Errorf("Status = %d, want 502 for malformed reply", w.Code)
	}
	if env.view.Scene() != before {
		t.Error("Failed analysis must not replace the prior scene result")
	}
}

func TestExportDocument_ByteIdenticalTranslation(t *testing.T) {
	env := newTestEnv(t, []string{validDocumentReply}, nil)

	if w := env.do(http.MethodPost, "/v1/analyze/document", models.DocumentAnalysisRequest{ImageBase64: testFrameBase64}); w.Code != http.StatusOK {
		t.Fatalf("Document analysis failed: %d %s", w.Code, w.Body.String())
	}

	w := env.do(http.MethodGet, "/v1/document/export", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d", w.Code)
	}
	if got := w.Body.String(); got != "Hola mundo" {
		t.Errorf("Export body = %q, must be the exact fullTranslation", got)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, ExportFileName) {
		t.Errorf("Content-Disposition = %q, want %q attachment", cd, ExportFileName)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestExportDocument_NothingToExport(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	w := env.do(http.MethodGet, "/v1/document/export", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Status = %d, want 404", w.Code)
	}
}

func TestSubmitTurn_AcceptedWithPlaceholder(t *testing.T) {
	env := newTestEnv(t, []string{"Hola a todos"}, nil)

	w := env.do(http.MethodPost, "/v1/conversation/turns", models.TurnRequest{
		Speaker:    "A",
		Transcript: "hello everyone",
	})
	if w.Code != http.StatusAccepted {
		t.Fatalf("Status = %d, body = %s", w.Code, w.Body.String())
	}

	var turn conversation.Turn
	if err := json.Unmarshal(w.Body.Bytes(), &turn); err != nil {
		t.Fatalf("Response not parseable: %v", err)
	}
	if turn.State != conversation.StateTranslating || turn.Translation != conversation.PlaceholderTranslation {
		t.Errorf("Snapshot = %+v, want translating with placeholder", turn)
	}

	env.pool.Wait()
	final, _ := env.session.Turn(turn.ID)
	if final.State != conversation.StateTranslated || final.Translation != "Hola a todos" {
		t.Errorf("Final turn = %+v", final)
	}
}

func TestSubmitTurn_InvalidSpeaker(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	w := env.do(http.MethodPost, "/v1/conversation/turns", models.TurnRequest{
		Speaker:    "C",
		Transcript: "hello",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want 400", w.Code)
	}
}

func TestListTurns(t *testing.T) {
	env := newTestEnv(t, []string{"uno", "dos"}, nil)

	env.do(http.MethodPost, "/v1/conversation/turns", models.TurnRequest{Speaker: "A", Transcript: "one"})
	env.do(http.MethodPost, "/v1/conversation/turns", models.TurnRequest{Speaker: "B", Transcript: "two"})
	env.pool.Wait()

	w := env.do(http.MethodGet, "/v1/conversation/turns", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d", w.Code)
	}
	var body struct {
		Turns []conversation.Turn `json:"turns"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Response not parseable: %v", err)
	}
	if len(body.Turns) != 2 || body.Turns[0].Original != "one" {
		t.Errorf("Turns = %+v", body.Turns)
	}
}

func TestSetLanguages(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	w := env.do(http.MethodPut, "/v1/conversation/languages", models.LanguagesRequest{
		SpeakerA: "French",
		SpeakerB: "Japanese",
	})
	if w.Code != http.StatusNoContent {
		t.Fatalf("Status = %d, body = %s", w.Code, w.Body.String())
	}
	own, other := env.session.Languages(conversation.SpeakerA)
	if own.Name != "French" || other.Name != "Japanese" {
		t.Errorf("Languages = %q/%q", own.Name, other.Name)
	}
}

func TestSetLanguages_Unsupported(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	w := env.do(http.MethodPut, "/v1/conversation/languages", models.LanguagesRequest{
		SpeakerA: "Klingon",
		SpeakerB: "English",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want 400", w.Code)
	}
}

func TestAskQuestion_UsesStoredScene(t *testing.T) {
	env := newTestEnv(t, []string{"It is an airport corridor."}, nil)
	env.view.SetScene(&models.SceneAnalysisResult{
		SceneContext: &models.SceneContext{English: "An airport corridor", Translated: "Un pasillo"},
	})

	w := env.do(http.MethodPost, "/v1/ask", models.QuestionRequest{Question: "where am I?"})
	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp models.QuestionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Response not parseable: %v", err)
	}
	if resp.Answer != "It is an airport corridor." {
		t.Errorf("Answer = %q", resp.Answer)
	}
}

func TestAskQuestion_NoContextAnywhere(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	w := env.do(http.MethodPost, "/v1/ask", models.QuestionRequest{Question: "where am I?"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want 400 capture unavailable", w.Code)
	}
}

func TestSpeak_Accepted(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	w := env.do(http.MethodPost, "/v1/speak", models.SpeakRequest{Text: "Hola", Language: "Spanish"})
	if w.Code != http.StatusAccepted {
		t.Errorf("Status = %d, want 202", w.Code)
	}
}
