package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/hyperjump/mondai/internal/config"
	"github.com/hyperjump/mondai/internal/extract"
	"github.com/hyperjump/mondai/internal/models"
)

// fakeService records the last request and returns a canned quiz or error.
type fakeService struct {
	lastText string
	lastNum  int
	lastDiff models.Difficulty
	err      error
}

func (f *fakeService) Generate(_ context.Context, text string, n int, d models.Difficulty) (*models.Quiz, error) {
	f.lastText, f.lastNum, f.lastDiff = text, n, d
	if f.err != nil {
		return nil, f.err
	}
	return &models.Quiz{
		ID:         "quiz-1",
		Difficulty: d,
		Questions: []models.MCQ{{
			Stem:    "_______ is the capital.",
			Choices: []string{"Paris", "Lyon", "Tokyo", "Berlin"},
			Answer:  "A",
		}},
		TotalQuestions: 1,
	}, nil
}

func newTestServer(svc QuizService) *Server {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	return NewServer(svc, extract.NewExtractor(), &cfg.Server, &cfg.Generate, zap.NewNop())
}

func TestHandleGenerate(t *testing.T) {
	svc := &fakeService{}
	srv := newTestServer(svc)

	body, _ := json.Marshal(models.QuizRequest{Text: "Paris is the capital of France.", NumQuestions: 3, Difficulty: "easy"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quiz", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
	if svc.lastNum != 3 || svc.lastDiff != models.DifficultyEasy {
		t.Errorf("service got num=%d diff=%s", svc.lastNum, svc.lastDiff)
	}
	var quiz models.Quiz
	if err := json.Unmarshal(rec.Body.Bytes(), &quiz); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if quiz.TotalQuestions != 1 {
		t.Errorf("got %+v", quiz)
	}
}

func TestHandleGenerate_Defaults(t *testing.T) {
	svc := &fakeService{}
	srv := newTestServer(svc)

	body, _ := json.Marshal(models.QuizRequest{Text: "Some text."})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quiz", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	if svc.lastNum != 5 || svc.lastDiff != models.DifficultyMedium {
		t.Errorf("expected config defaults, got num=%d diff=%s", svc.lastNum, svc.lastDiff)
	}
}

func TestHandleGenerate_BadDifficulty(t *testing.T) {
	srv := newTestServer(&fakeService{})
	body, _ := json.Marshal(models.QuizRequest{Text: "x", Difficulty: "impossible"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quiz", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d", rec.Code)
	}
}

func TestHandleGenerate_BadBody(t *testing.T) {
	srv := newTestServer(&fakeService{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quiz", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d", rec.Code)
	}
}

func TestHandleGenerate_ServiceError(t *testing.T) {
	srv := newTestServer(&fakeService{err: errors.New("embedding model unavailable")})
	body, _ := json.Marshal(models.QuizRequest{Text: "x"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quiz", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status: got %d", rec.Code)
	}
}

func TestHandleUpload(t *testing.T) {
	svc := &fakeService{}
	srv := newTestServer(svc)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "doc.txt")
	if err != nil {
		t.Fatal(err)
	}
	_, _ = fw.Write([]byte("Paris is the capital of France."))
	_ = mw.WriteField("num_questions", "2")
	_ = mw.WriteField("difficulty", "Hard")
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/quiz/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
	if svc.lastText != "Paris is the capital of France." {
		t.Errorf("extracted text: %q", svc.lastText)
	}
	if svc.lastNum != 2 || svc.lastDiff != models.DifficultyHard {
		t.Errorf("got num=%d diff=%s", svc.lastNum, svc.lastDiff)
	}
}

func TestHandleUpload_MissingFile(t *testing.T) {
	srv := newTestServer(&fakeService{})
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("difficulty", "Easy")
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/quiz/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d", rec.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(&fakeService{})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d", rec.Code)
	}
}
