package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"memories/internal/apperror"
	"memories/internal/identity"
)

// ErrorResponse is the body of every error reply. Detail carries the stack
// trace of internal errors outside production.
type ErrorResponse struct {
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// WriteError sends a plain error reply.
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	writeSuccess(w, ErrorResponse{Message: message}, statusCode)
}

// writeSuccess sends data as JSON with the given status.
func writeSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logrus.WithError(err).Warn("Failed to encode response")
	}
}

// writeAppError maps a service error to its HTTP reply.
func (h *Handlers) writeAppError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperror.As(err)
	status := appErr.HTTPStatus()
	resp := ErrorResponse{Message: appErr.Message}

	entry := logrus.WithFields(logrus.Fields{
		"method":     r.Method,
		"path":       r.URL.Path,
		"status":     status,
		"request_id": middleware.GetReqID(r.Context()),
	})

	if appErr.Kind != apperror.KindInternal {
		entry.WithField("kind", appErr.Kind.String()).Debug(appErr.Message)
		writeSuccess(w, resp, status)
		return
	}

	entry.WithError(appErr.Err).Error(appErr.Message)
	if h.Cfg != nil && h.Cfg.IsProduction() {
		resp.Message = "Internal server error"
	} else if appErr.Err != nil {
		resp.Detail = fmt.Sprintf("%+v", appErr.Err)
	}

	writeSuccess(w, resp, status)
}

// requireCaller answers 401 for anonymous requests before any body is read.
func (h *Handlers) requireCaller(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := identity.UserID(r.Context())
	if userID == "" {
		WriteError(w, "Unauthenticated", http.StatusUnauthorized)
		return "", false
	}
	return userID, true
}

// decodeJSON reads a size limited JSON body into dst.
func (h *Handlers) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if h.Cfg != nil && h.Cfg.MaxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize)
	}

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return apperror.BadRequest("Request body too large").WithStatus(http.StatusRequestEntityTooLarge)
		}
		return apperror.BadRequest("Invalid request body")
	}

	return nil
}
