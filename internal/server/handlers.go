package server

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/panes/pkg/buildinfo"
	"github.com/matzehuels/panes/pkg/document"
	"github.com/matzehuels/panes/pkg/errors"
	"github.com/matzehuels/panes/pkg/pipeline"
	"github.com/matzehuels/panes/pkg/render"
	"github.com/matzehuels/panes/pkg/store"
)

type healthResponse struct {
	Status string         `json:"status"`
	Cache  string         `json:"cache"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Cache: s.runner.Cache.Backend(), Build: buildinfo.Get()})
}

// createRequest is the JSON body of POST /v1/layouts. TOML bodies carry only
// the document; their options come from the query string.
type createRequest struct {
	Document *document.Document `json:"document"`
	Options  pipeline.Options   `json:"options"`
}

type createResponse struct {
	ID        string           `json:"id"`
	Cached    bool             `json:"cached"`
	ExpiresAt time.Time        `json:"expires_at"`
	Layout    *document.Result `json:"layout"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeCreate(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Document == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "document is required"))
		return
	}

	ctx := r.Context()
	opts := req.Options
	opts.Logger = s.logger
	res, hit, err := s.runner.LayoutWithCacheInfo(ctx, req.Document, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	docHash, err := pipeline.HashDocument(req.Document)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	rec := store.NewRecord(res, docHash, s.cfg.TTL)
	if err := s.store.Put(ctx, rec); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "store layout"))
		return
	}

	s.logger.Info("stored layout", "id", rec.ID, "name", res.Name, "frames", len(res.Frames), "cached", hit)
	w.Header().Set("Location", "/v1/layouts/"+rec.ID)
	writeJSON(w, http.StatusCreated, createResponse{
		ID:        rec.ID,
		Cached:    hit,
		ExpiresAt: rec.ExpiresAt,
		Layout:    res,
	})
}

func (s *Server) decodeCreate(w http.ResponseWriter, r *http.Request) (*createRequest, error) {
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	defer body.Close()

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/toml" {
		doc, err := document.Decode(body, document.FormatTOML)
		if err != nil {
			return nil, err
		}
		opts, err := optionsFromQuery(r.URL.Query())
		if err != nil {
			return nil, err
		}
		return &createRequest{Document: doc, Options: opts}, nil
	}

	var req createRequest
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		if err == io.EOF {
			return nil, errors.New(errors.ErrCodeInvalidInput, "request body is empty")
		}
		return nil, errors.New(errors.ErrCodeInvalidInput, "decode request: %v", err)
	}
	return &req, nil
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	limit := DefaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "limit must be a positive integer"))
			return
		}
		limit = n
	}

	summaries, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if summaries == nil {
		summaries = []store.Summary{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"layouts": summaries})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.store.Get(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := render.ValidateFormats([]string{format}); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := optionsFromQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{format}
	opts.Logger = s.logger

	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	artifacts, hit, err := s.runner.RenderWithCacheInfo(r.Context(), rec.Result, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	if hit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

// optionsFromQuery reads pipeline options from query parameters. Unset
// parameters keep their zero value so pipeline defaults apply.
func optionsFromQuery(q url.Values) (pipeline.Options, error) {
	var opts pipeline.Options
	floats := map[string]*float64{"width": &opts.Width, "height": &opts.Height, "scale": &opts.Scale}
	for name, dst := range floats {
		if v := q.Get(name); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return opts, errors.New(errors.ErrCodeInvalidInput, "%s: %q is not a number", name, v)
			}
			*dst = f
		}
	}
	bools := map[string]*bool{"labels": &opts.Labels, "details": &opts.Details, "hidden": &opts.Hidden, "refresh": &opts.Refresh}
	for name, dst := range bools {
		if v := q.Get(name); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return opts, errors.New(errors.ErrCodeInvalidInput, "%s: %q is not a boolean", name, v)
			}
			*dst = b
		}
	}
	opts.Horizontal = q.Get("horizontal")
	opts.Vertical = q.Get("vertical")
	opts.Style = q.Get("style")
	return opts, nil
}
