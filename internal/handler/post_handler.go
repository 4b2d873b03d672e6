package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"memories/internal/models"
	"memories/internal/service"
)

// noSearchText is sent by the client when the search box is empty.
const noSearchText = "none"

type PostsResponse struct {
	Data []*models.Post `json:"data"`
}

func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	result, err := h.PostService.GetPosts(r.Context(), page)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}

	writeSuccess(w, result, http.StatusOK)
}

func (h *Handlers) GetPostsBySearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	text := query.Get("searchQuery")
	if text == noSearchText {
		text = ""
	}

	var tags []string
	if raw := query.Get("tags"); raw != "" {
		tags = strings.Split(raw, ",")
	}

	posts, err := h.PostService.SearchPosts(r.Context(), text, tags)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}

	writeSuccess(w, PostsResponse{Data: posts}, http.StatusOK)
}

func (h *Handlers) GetPostsByCreator(w http.ResponseWriter, r *http.Request) {
	posts, err := h.PostService.GetPostsByCreator(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}

	writeSuccess(w, PostsResponse{Data: posts}, http.StatusOK)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.PostService.GetPost(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}

	writeSuccess(w, post, http.StatusOK)
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireCaller(w, r)
	if !ok {
		return
	}

	var req service.PostInput
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeAppError(w, r, err)
		return
	}

	post, err := h.PostService.CreatePost(r.Context(), userID, req)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}

	writeSuccess(w, post, http.StatusCreated)
}

func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireCaller(w, r)
	if !ok {
		return
	}

	var req service.PostInput
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeAppError(w, r, err)
		return
	}

	post, err := h.PostService.UpdatePost(r.Context(), mux.Vars(r)["id"], userID, req)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}

	writeSuccess(w, post, http.StatusOK)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireCaller(w, r)
	if !ok {
		return
	}

	err := h.PostService.DeletePost(r.Context(), mux.Vars(r)["id"], userID)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}

	writeSuccess(w, MessageResponse{Message: "Post deleted successfully."}, http.StatusOK)
}

func (h *Handlers) LikePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireCaller(w, r)
	if !ok {
		return
	}

	post, err := h.PostService.LikePost(r.Context(), mux.Vars(r)["id"], userID)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}

	writeSuccess(w, post, http.StatusOK)
}
