package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/AsukaFurukawa/MyBlog/internal/blog"
)

type CommentsHandler struct {
	comments *blog.Comments
}

func NewCommentsHandler(comments *blog.Comments) *CommentsHandler {
	return &CommentsHandler{comments: comments}
}

// List serves GET /api/comments?postId= — approved comments only,
// oldest first.
func (h *CommentsHandler) List(w http.ResponseWriter, r *http.Request) {
	postID := r.URL.Query().Get("postId")
	if postID == "" {
		respondError(w, http.StatusBadRequest, "missing postId")
		return
	}
	comments, err := h.comments.ListApproved(r.Context(), postID)
	if err != nil {
		respondOpError(w, err, "failed to load comments")
		return
	}
	respondJSON(w, http.StatusOK, comments)
}

func (h *CommentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input blog.CommentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}
	created, err := h.comments.Create(r.Context(), input)
	if err != nil {
		respondOpError(w, err, "failed to create comment")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (h *CommentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "missing id")
		return
	}
	if err := h.comments.Delete(r.Context(), id); err != nil {
		respondOpError(w, err, "failed to delete comment")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
