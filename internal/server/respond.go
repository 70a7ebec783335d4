package server

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/panes/pkg/errors"
	"github.com/matzehuels/panes/pkg/render"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    errors.Code         `json:"code"`
	Message string              `json:"message"`
	Fields  []errors.FieldError `json:"fields,omitempty"`
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidDocument, errors.ErrCodeInvalidPolicy,
		errors.ErrCodeInvalidKind, errors.ErrCodeInvalidPredicate, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidViewport:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeLayoutNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := statusFor(code)

	detail := errorDetail{Code: code, Message: errors.UserMessage(err)}
	if fields := errors.Fields(err); fields != nil {
		detail.Fields = fields
		detail.Message = "document is invalid"
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		detail.Message = "internal error"
	}
	writeJSON(w, status, errorBody{Error: detail})
}

var contentTypes = map[string]string{
	render.FormatSVG:    "image/svg+xml",
	render.FormatDOTSVG: "image/svg+xml",
	render.FormatDOT:    "text/vnd.graphviz; charset=utf-8",
	render.FormatJSON:   "application/json",
	render.FormatTree:   "text/plain; charset=utf-8",
}
