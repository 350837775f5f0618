package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/mwis/pkg/buildinfo"
	"github.com/matzehuels/mwis/pkg/errors"
	"github.com/matzehuels/mwis/pkg/graphio"
	"github.com/matzehuels/mwis/pkg/mis"
	"github.com/matzehuels/mwis/pkg/pipeline"
	"github.com/matzehuels/mwis/pkg/render/nodelink"
)

// SolveResponse is the body of a successful /v1/solve call.
type SolveResponse struct {
	ID         string                `json:"id"`
	Weight     float64               `json:"weight"`
	Vertices   []int                 `json:"vertices"`
	Labels     []string              `json:"labels"`
	Components []mis.ComponentResult `json:"components"`
	Cached     bool                  `json:"cached"`
}

// ErrorResponse is the body of every failed call.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody describes a failure.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) solve(w http.ResponseWriter, r *http.Request) {
	doc, opts, err := s.decode(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	g, err := doc.Graph()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, cached, err := s.runner.SolveWithCacheInfo(r.Context(), g, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, SolveResponse{
		ID:         uuid.NewString(),
		Weight:     res.Weight,
		Vertices:   res.Vertices,
		Labels:     doc.LabelsOf(res.Vertices),
		Components: res.Components,
		Cached:     cached,
	})
}

var contentTypes = map[string]string{
	nodelink.FormatSVG: "image/svg+xml",
	nodelink.FormatPNG: "image/png",
	nodelink.FormatDOT: "text/vnd.graphviz; charset=utf-8",
}

func (s *Server) render(w http.ResponseWriter, r *http.Request) {
	doc, opts, err := s.decode(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	q := r.URL.Query()
	opts.Format = strings.ToLower(q.Get("format"))
	opts.Layout = q.Get("layout")
	if v := q.Get("weights"); v != "" {
		weights, err := strconv.ParseBool(v)
		if err != nil {
			s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "weights must be a boolean"))
			return
		}
		opts.Weights = weights
	}
	if err := opts.ValidateForRender(); err != nil {
		s.writeError(w, r, err)
		return
	}

	g, err := doc.Graph()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, _, err := s.runner.SolveWithCacheInfo(r.Context(), g, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	artifact, _, err := s.runner.RenderWithCacheInfo(r.Context(), doc, res, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[opts.Format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifact)
}

// decode reads the graph document and merges query overrides into the
// server's defaults.
func (s *Server) decode(w http.ResponseWriter, r *http.Request) (*graphio.Document, pipeline.Options, error) {
	opts := s.opts.Defaults
	q := r.URL.Query()
	if v := q.Get("strategy"); v != "" {
		opts.Strategy = v
	}
	if v := q.Get("max_branches"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "max_branches must be an integer")
		}
		opts.MaxBranches = n
	}
	opts.Refresh = q.Has("refresh")
	if err := opts.ValidateForSolve(); err != nil {
		return nil, opts, err
	}

	format := graphio.Format("")
	if strings.Contains(r.Header.Get("Content-Type"), "toml") {
		format = graphio.FormatTOML
	}
	body := http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes)
	doc, err := graphio.Read(body, format)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return nil, opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "request body exceeds %d bytes", s.opts.MaxBodyBytes)
		}
		return nil, opts, err
	}
	return doc, opts, nil
}

// statusFor maps error codes to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.IsInvalid(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeUnsupported):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errors.ErrCodeTimeout):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, ErrorResponse{Error: ErrorBody{
		Code:    string(code),
		Message: errors.UserMessage(err),
	}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
