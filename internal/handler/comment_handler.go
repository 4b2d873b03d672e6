package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"memories/internal/service"
)

// CommentRequest is the body of comment and reply writes. Value is the
// field older clients send instead of Text.
type CommentRequest struct {
	Text  string `json:"text"`
	Value string `json:"value"`
	Name  string `json:"name"`
}

func (c CommentRequest) input() service.CommentInput {
	text := c.Text
	if text == "" {
		text = c.Value
	}
	return service.CommentInput{Text: text, Name: c.Name}
}

func (h *Handlers) CommentPost(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireCaller(w, r)
	if !ok {
		return
	}

	var req CommentRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeAppError(w, r, err)
		return
	}

	post, err := h.CommentService.AddComment(r.Context(), mux.Vars(r)["id"], userID, req.input())
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}

	writeSuccess(w, post, http.StatusOK)
}

func (h *Handlers) EditComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireCaller(w, r)
	if !ok {
		return
	}

	var req CommentRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeAppError(w, r, err)
		return
	}

	vars := mux.Vars(r)
	post, err := h.CommentService.EditComment(r.Context(), vars["id"], vars["commentId"],
		userID, req.input().Text)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}

	writeSuccess(w, post, http.StatusOK)
}

func (h *Handlers) DeleteComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireCaller(w, r)
	if !ok {
		return
	}

	vars := mux.Vars(r)
	post, err := h.CommentService.DeleteComment(r.Context(), vars["id"], vars["commentId"], userID)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}

	writeSuccess(w, post, http.StatusOK)
}

func (h *Handlers) AddReply(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireCaller(w, r)
	if !ok {
		return
	}

	var req CommentRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeAppError(w, r, err)
		return
	}

	vars := mux.Vars(r)
	post, err := h.CommentService.AddReply(r.Context(), vars["id"], vars["commentId"],
		userID, req.input())
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}

	writeSuccess(w, post, http.StatusOK)
}

func (h *Handlers) EditReply(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireCaller(w, r)
	if !ok {
		return
	}

	var req CommentRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeAppError(w, r, err)
		return
	}

	vars := mux.Vars(r)
	post, err := h.CommentService.EditReply(r.Context(), vars["id"], vars["commentId"], vars["replyId"],
		userID, req.input().Text)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}

	writeSuccess(w, post, http.StatusOK)
}

func (h *Handlers) DeleteReply(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireCaller(w, r)
	if !ok {
		return
	}

	vars := mux.Vars(r)
	post, err := h.CommentService.DeleteReply(r.Context(), vars["id"], vars["commentId"], vars["replyId"],
		userID)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}

	writeSuccess(w, post, http.StatusOK)
}
