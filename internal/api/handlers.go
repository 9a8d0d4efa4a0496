package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	ferrors "github.com/matzehuels/framecast/pkg/errors"
	fio "github.com/matzehuels/framecast/pkg/io"
	"github.com/matzehuels/framecast/pkg/pipeline"
	"github.com/matzehuels/framecast/pkg/render/treeviz"
	"github.com/matzehuels/framecast/pkg/store"
)

// convertResponse is returned by POST /api/convert.
type convertResponse struct {
	ID       string              `json:"id"`
	Status   store.Status        `json:"status"`
	CacheHit bool                `json:"cacheHit"`
	Stats    pipeline.Stats      `json:"stats"`
	Fonts    map[string][]string `json:"fonts,omitempty"`
	URL      string              `json:"url"`
}

// errorResponse carries a categorized failure.
type errorResponse struct {
	Error    string           `json:"error"`
	Code     ferrors.Code     `json:"code,omitempty"`
	Category ferrors.Category `json:"category"`
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxBodyBytes)

	page, err := fio.ReadElements(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		s.writeFailure(w, err)
		return
	}

	q := r.URL.Query()
	opts := s.cfg.PipelineOptions()
	opts.Logger = s.log
	opts.Refresh = q.Get("refresh") == "true"
	if v := q.Get("title"); v != "" {
		opts.Title = v
	}
	if v, err := strconv.ParseFloat(q.Get("width"), 64); err == nil && v > 0 {
		opts.Viewport.Width = v
	}
	if v, err := strconv.ParseFloat(q.Get("height"), 64); err == nil && v > 0 {
		opts.Viewport.Height = v
	}

	opts.ID = uuid.NewString()

	runner := pipeline.NewRunner(s.cache, s.cfg.Keyer(), s.log)
	runner.Fetcher = s.fetcher
	runner.Hooks = s.hooks

	ttl := s.cfg.Store.TTL.Duration
	conv, err := runner.Convert(r.Context(), page, opts)
	if err != nil {
		status := store.StatusFailed
		if ferrors.Is(err, ferrors.ErrCodeTimeout) {
			status = store.StatusTimedOut
		}
		if perr := s.store.Put(r.Context(), store.FailedRecord(opts.ID, page.Name(), status, err, ttl)); perr != nil {
			s.log.Warn("store failed conversion", "err", perr)
		}
		s.writeFailure(w, err)
		return
	}

	rec := store.NewRecord(conv, page.Name(), ttl)
	if err := s.store.Put(r.Context(), rec); err != nil {
		s.log.Error("store conversion", "id", conv.ID, "err", err)
		jsonError(w, "failed to store conversion", http.StatusInternalServerError)
		return
	}

	resp := convertResponse{
		ID:       conv.ID,
		Status:   rec.Status,
		CacheHit: conv.CacheHit,
		Stats:    rec.Stats,
		URL:      "/api/conversions/" + conv.ID,
	}
	if conv.Result != nil {
		resp.Fonts = conv.Result.Fonts
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListConversions(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	recs, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.log.Error("list conversions", "err", err)
		jsonError(w, "failed to list conversions", http.StatusInternalServerError)
		return
	}
	type summary struct {
		ID        string         `json:"id"`
		Title     string         `json:"title"`
		Status    store.Status   `json:"status"`
		Stats     pipeline.Stats `json:"stats"`
		CreatedAt time.Time      `json:"createdAt"`
	}
	out := make([]summary, len(recs))
	for i, rec := range recs {
		out[i] = summary{ID: rec.ID, Title: rec.Title, Status: rec.Status, Stats: rec.Stats, CreatedAt: rec.CreatedAt}
	}
	writeJSON(w, http.StatusOK, map[string]any{"conversions": out})
}

func (s *Server) record(w http.ResponseWriter, r *http.Request) (*store.Record, bool) {
	id := chi.URLParam(r, "id")
	if err := ferrors.ValidateConversionID(id); err != nil {
		s.writeFailure(w, err)
		return nil, false
	}
	rec, err := s.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.writeFailure(w, ferrors.Wrap(ferrors.ErrCodeNotFound, err, "conversion %s", id))
		return nil, false
	}
	if err != nil {
		s.log.Error("get conversion", "id", id, "err", err)
		jsonError(w, "failed to load conversion", http.StatusInternalServerError)
		return nil, false
	}
	return rec, true
}

func (s *Server) handleGetConversion(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.record(w, r)
	if !ok {
		return
	}
	summary := *rec
	summary.Document = nil
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.record(w, r)
	if !ok {
		return
	}
	if rec.Document == nil {
		jsonError(w, "conversion has no document", http.StatusConflict)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := fio.WriteDocument(rec.Document, w); err != nil {
		s.log.Warn("write document", "id", rec.ID, "err", err)
	}
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateTreeFormat(format); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	rec, ok := s.record(w, r)
	if !ok {
		return
	}
	if rec.Document == nil {
		jsonError(w, "conversion has no document", http.StatusConflict)
		return
	}

	dot := treeviz.ToDOT(rec.Document, treeviz.Options{Detailed: r.URL.Query().Get("detailed") == "true"})
	var (
		body        []byte
		contentType string
		err         error
	)
	switch format {
	case pipeline.FormatDOT:
		body, contentType = []byte(dot), "text/vnd.graphviz"
	case pipeline.FormatSVG:
		body, err = treeviz.RenderSVG(dot)
		contentType = "image/svg+xml"
	case pipeline.FormatPNG:
		body, err = treeviz.RenderPNG(dot)
		contentType = "image/png"
	}
	if err != nil {
		s.log.Error("render tree", "id", rec.ID, "err", err)
		jsonError(w, "failed to render tree", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Write(body)
}

func (s *Server) handleDeleteConversion(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := ferrors.ValidateConversionID(id); err != nil {
		s.writeFailure(w, err)
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.log.Error("delete conversion", "id", id, "err", err)
		jsonError(w, "failed to delete conversion", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeFailure(w http.ResponseWriter, err error) {
	code := ferrors.GetCode(err)
	if ferrors.IsFatal(err) {
		s.log.Error("conversion failed", "code", code, "err", err)
	}
	writeJSON(w, statusFor(code), errorResponse{
		Error:    ferrors.UserMessage(err),
		Code:     code,
		Category: ferrors.Categorize(err),
	})
}

func statusFor(code ferrors.Code) int {
	switch code {
	case ferrors.ErrCodeInvalidInput, ferrors.ErrCodeInvalidElement, ferrors.ErrCodeInvalidConfig:
		return http.StatusBadRequest
	case ferrors.ErrCodeNotFound:
		return http.StatusNotFound
	case ferrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}
