package models

import "time"

// Comment belongs to a post via PostID. The reference is not checked
// against the posts table, so deleting a post can orphan its comments.
type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	Approved  bool      `json:"approved"`
}
