package server

import (
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/hyperjump/mondai/internal/models"
	"github.com/hyperjump/mondai/pkg/utils"
)

// maxUploadBytes caps multipart uploads (32 MiB).
const maxUploadBytes = 32 << 20

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req models.QuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.generateAndRespond(w, r, req)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()
	content, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	text, err := s.extractor.ExtractBytes(content, ext)
	if err != nil {
		s.logger.Warn("extraction failed", zap.String("filename", header.Filename), zap.Error(err))
		s.respondError(w, http.StatusUnprocessableEntity, "could not extract text: "+err.Error())
		return
	}

	req := models.QuizRequest{
		Text:       text,
		Difficulty: r.FormValue("difficulty"),
	}
	if v := r.FormValue("num_questions"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			s.respondError(w, http.StatusBadRequest, "num_questions must be a positive integer")
			return
		}
		req.NumQuestions = n
	}
	s.generateAndRespond(w, r, req)
}

// generateAndRespond applies request defaults, runs generation, and writes the quiz.
func (s *Server) generateAndRespond(w http.ResponseWriter, r *http.Request, req models.QuizRequest) {
	if req.NumQuestions < 0 {
		s.respondError(w, http.StatusBadRequest, "num_questions must be a positive integer")
		return
	}
	if req.NumQuestions == 0 {
		req.NumQuestions = s.generate.DefaultQuestions
	}
	if req.Difficulty == "" {
		req.Difficulty = s.generate.DefaultDifficulty
	}
	difficulty, err := models.ParseDifficulty(req.Difficulty)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.logger.Debug("quiz request",
		zap.Int("num_questions", req.NumQuestions),
		zap.String("difficulty", string(difficulty)),
		zap.String("text", utils.Truncate(req.Text, 120)),
	)
	quiz, err := s.service.Generate(r.Context(), req.Text, req.NumQuestions, difficulty)
	if err != nil {
		s.logger.Error("generation failed", zap.Error(err))
		s.respondError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, quiz)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
