package handlers

import (
	"net/http"

	"memories/internal/service"
)

type GoogleSignInRequest struct {
	TokenID string `json:"tokenId"`
	// Credential is the field name used by the Google Identity Services button.
	Credential string `json:"credential"`
}

func (h *Handlers) Signin(w http.ResponseWriter, r *http.Request) {
	var req service.SigninInput
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeAppError(w, r, err)
		return
	}

	result, err := h.AuthService.Signin(r.Context(), req)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}

	writeSuccess(w, result, http.StatusOK)
}

func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	var req service.SignupInput
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeAppError(w, r, err)
		return
	}

	result, err := h.AuthService.Signup(r.Context(), req)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}

	writeSuccess(w, result, http.StatusCreated)
}

func (h *Handlers) GoogleSignIn(w http.ResponseWriter, r *http.Request) {
	var req GoogleSignInRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeAppError(w, r, err)
		return
	}

	token := req.TokenID
	if token == "" {
		token = req.Credential
	}

	result, err := h.AuthService.GoogleSignIn(r.Context(), token)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}

	writeSuccess(w, result, http.StatusOK)
}
