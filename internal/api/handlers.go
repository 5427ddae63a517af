// # internal/api/handlers.go
package api

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"io"
	"log/slog"
	"net/http"

	"sherlock/internal/core/errors"
	"sherlock/internal/engine/parser"
)

type failureResponse struct {
	Success bool `json:"success"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Debug("failed to write response", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := s.health.Check(r.Context())
	code := http.StatusOK
	if status.Status != "ok" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, status)
}

func (s *Server) handleOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(s.spec)
}

// decodeRequest reads the optional JSON body. An empty body is the same as
// {}. It writes a 400 and returns false when the body cannot be decoded.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request) (parser.ExtractRequest, bool) {
	var req parser.ExtractRequest

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		status := http.StatusBadRequest
		if stderrors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		writeJSON(w, status, failureResponse{Success: false})
		return req, false
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return req, true
	}
	if err := json.Unmarshal(data, &req); err != nil {
		slog.Debug("invalid request body", "request_id", RequestIDFrom(r.Context()), "error", err)
		writeJSON(w, http.StatusBadRequest, failureResponse{Success: false})
		return req, false
	}
	return req, true
}

// fail logs err with its code and answers with the generic failure body.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, operation string, err error) {
	slog.Error("request failed",
		"request_id", RequestIDFrom(r.Context()),
		"operation", operation,
		"code", errors.CodeOf(err),
		"error", err,
	)
	writeJSON(w, http.StatusInternalServerError, failureResponse{Success: false})
}

// handleExtract accepts start_line/end_line in the body but does not apply
// them to extraction.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.decodeRequest(w, r); !ok {
		return
	}
	symbols, err := s.app.ExtractSymbols(r.Context(), r.PathValue("repo"), r.PathValue("file"))
	if err != nil {
		s.fail(w, r, "extract", err)
		return
	}
	writeJSON(w, http.StatusOK, parser.ExtractResponse{Symbols: symbols, Success: true})
}

func (s *Server) handleExtractDeps(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.decodeRequest(w, r); !ok {
		return
	}
	deps, err := s.app.ExtractDependencies(r.Context(), r.PathValue("repo"), r.PathValue("file"))
	if err != nil {
		s.fail(w, r, "extract_deps", err)
		return
	}
	writeJSON(w, http.StatusOK, parser.ExtractResponse{Symbols: deps, Success: true})
}

func (s *Server) handleHash(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}
	hash, err := s.app.ChunkHash(r.Context(), r.PathValue("repo"), r.PathValue("file"), req.StartLine, req.EndLine)
	if err != nil {
		s.fail(w, r, "hash", err)
		return
	}
	writeJSON(w, http.StatusOK, parser.HashResponse{Hash: hash, Success: true})
}
