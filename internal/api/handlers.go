package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"time"

	"github.com/vmunix/mediatheque/internal/auth"
	"github.com/vmunix/mediatheque/internal/catalog"
	"github.com/vmunix/mediatheque/internal/progress"
	"github.com/vmunix/mediatheque/internal/source"
)

// Auth

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string     `json:"token"`
	User  *auth.User `json:"user"`
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	if s.users == nil || s.tokens == nil {
		writeError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Authentication not configured")
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid JSON body")
		return
	}

	user, err := s.users.Authenticate(req.Username, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid credentials")
		return
	}
	if err != nil {
		s.logger.Error("authenticate failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Authentication failed")
		return
	}

	token, err := s.tokens.IssueToken(user.ID, user.Username)
	if err != nil {
		s.logger.Error("issue token failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Token generation failed")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token, User: user})
}

// Catalog

type categoryInfo struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

func (s *Server) listCategories(w http.ResponseWriter, _ *http.Request) {
	out := make([]categoryInfo, 0, len(catalog.Categories))
	for _, c := range catalog.Categories {
		out = append(out, categoryInfo{Name: string(c), Kind: string(c.Kind())})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) listCategory(w http.ResponseWriter, r *http.Request) {
	category, err := catalog.ParseCategory(r.PathValue("category"))
	if err != nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", fmt.Sprintf("Unknown category %q", r.PathValue("category")))
		return
	}

	cacheKey := "catalog:" + string(category)
	if s.results != nil {
		var cached []catalog.Item
		if err := s.results.Get(r.Context(), cacheKey, &cached); err == nil {
			writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	items, err := s.catalog.CategoryItems(r.Context(), category)
	if err != nil {
		s.logger.Error("category listing failed", "category", category, "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Listing failed")
		return
	}
	if items == nil {
		items = []catalog.Item{}
	}

	if s.results != nil {
		s.results.Set(r.Context(), cacheKey, items)
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "Missing query parameter q")
		return
	}

	results, err := s.catalog.Search(r.Context(), q)
	if err != nil {
		s.logger.Error("search failed", "query", q, "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Search failed")
		return
	}
	if results == nil {
		results = []catalog.MediaItem{}
	}
	writeJSON(w, http.StatusOK, results)
}

// Media

func (s *Server) stream(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "Missing query parameter path")
		return
	}

	rc, err := s.source.Open(r.Context(), path)
	if errors.Is(err, source.ErrNotFound) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "File not found")
		return
	}
	if err != nil {
		s.logger.Error("open failed", "path", path, "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Open failed")
		return
	}
	defer func() { _ = rc.Close() }()

	// Seekable files get range request support.
	if seeker, ok := rc.(io.ReadSeeker); ok {
		http.ServeContent(w, r, filepath.Base(path), time.Time{}, seeker)
		return
	}

	// Remote pipes stream start to finish.
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		w.Header().Set("Content-Type", ct)
	} else {
		w.Header().Set("Content-Type", "application/octet-stream")
	}
	if size, err := s.source.Size(r.Context(), path); err == nil {
		w.Header().Set("Content-Length", fmt.Sprintf("%d", size))
	}
	if _, err := io.Copy(w, rc); err != nil {
		s.logger.Debug("stream interrupted", "path", path, "error", err)
	}
}

func (s *Server) getArtwork(w http.ResponseWriter, r *http.Request) {
	if s.artwork == nil {
		writeError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Artwork store not configured")
		return
	}

	data, ok := s.artwork.Get(r.PathValue("ref"))
	if !ok {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Unknown artwork ref")
		return
	}

	w.Header().Set("Content-Type", http.DetectContentType(data))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(data)
}

// Progress

type progressRequest struct {
	Position float64 `json:"position"`
	Duration float64 `json:"duration"`
}

func (s *Server) listProgress(w http.ResponseWriter, r *http.Request) {
	records, err := s.progress.ListByUser(userID(r))
	if err != nil {
		s.logger.Error("list progress failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Listing failed")
		return
	}
	if records == nil {
		records = []*progress.Record{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) putProgress(w http.ResponseWriter, r *http.Request) {
	var req progressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid JSON body")
		return
	}
	if req.Position < 0 || req.Duration < 0 {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "Position and duration must be non-negative")
		return
	}

	rec := &progress.Record{
		UserID:   userID(r),
		ItemID:   r.PathValue("item"),
		Position: req.Position,
		Duration: req.Duration,
	}
	if err := s.progress.Upsert(rec); err != nil {
		s.logger.Error("upsert progress failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Save failed")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) getProgress(w http.ResponseWriter, r *http.Request) {
	rec, err := s.progress.Get(userID(r), r.PathValue("item"))
	if errors.Is(err, progress.ErrNotFound) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "No progress recorded")
		return
	}
	if err != nil {
		s.logger.Error("get progress failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) deleteProgress(w http.ResponseWriter, r *http.Request) {
	if err := s.progress.Delete(userID(r), r.PathValue("item")); err != nil {
		s.logger.Error("delete progress failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Delete failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// System

func (s *Server) getStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"auth":   s.tokens != nil,
		"cache":  s.results != nil && s.results.Enabled(),
	})
}

func (s *Server) refresh(w http.ResponseWriter, r *http.Request) {
	if s.results != nil {
		s.results.Invalidate(r.Context(), "catalog:*")
	}
	w.WriteHeader(http.StatusNoContent)
}
