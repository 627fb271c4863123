package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/AsukaFurukawa/MyBlog/internal/blog"
)

type PostsHandler struct {
	posts *blog.Posts
}

func NewPostsHandler(posts *blog.Posts) *PostsHandler {
	return &PostsHandler{posts: posts}
}

// List serves GET /api/posts. With ?id= it returns that single post;
// otherwise it returns the listing filtered by ?isDraft= (default
// false). There is no pagination.
func (h *PostsHandler) List(w http.ResponseWriter, r *http.Request) {
	if id := r.URL.Query().Get("id"); id != "" {
		post, err := h.posts.Get(r.Context(), id)
		if err != nil {
			respondOpError(w, err, "failed to load post")
			return
		}
		respondJSON(w, http.StatusOK, post)
		return
	}

	isDraft, _ := strconv.ParseBool(r.URL.Query().Get("isDraft"))
	posts, err := h.posts.List(r.Context(), isDraft)
	if err != nil {
		respondOpError(w, err, "failed to load posts")
		return
	}
	respondJSON(w, http.StatusOK, posts)
}

func (h *PostsHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		respondError(w, http.StatusBadRequest, "missing slug")
		return
	}
	post, err := h.posts.GetBySlug(r.Context(), slug)
	if err != nil {
		respondOpError(w, err, "failed to load post")
		return
	}
	respondJSON(w, http.StatusOK, post)
}

func (h *PostsHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		respondError(w, http.StatusBadRequest, "missing search query")
		return
	}
	posts, err := h.posts.Search(r.Context(), query)
	if err != nil {
		respondOpError(w, err, "failed to search posts")
		return
	}
	respondJSON(w, http.StatusOK, posts)
}

func (h *PostsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input blog.PostInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}
	created, err := h.posts.Create(r.Context(), input)
	if err != nil {
		respondOpError(w, err, "failed to create post")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (h *PostsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "missing id")
		return
	}
	var patch blog.PostPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}
	updated, err := h.posts.Update(r.Context(), id, patch)
	if err != nil {
		respondOpError(w, err, "failed to update post")
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (h *PostsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "missing id")
		return
	}
	if err := h.posts.Delete(r.Context(), id); err != nil {
		respondOpError(w, err, "failed to delete post")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
