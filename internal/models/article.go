package models

import (
	"time"
)

// Article represents a shared link
type Article struct {
	ID        int64     `json:"id" db:"id"`
	URL       string    `json:"url" db:"url"`
	Title     string    `json:"title" db:"title"`
	UserID    int64     `json:"user_id" db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ArticleWithAuthor is an article joined with its author's username,
// the shape returned by list and create
type ArticleWithAuthor struct {
	Article
	Username string `json:"username" db:"username"`
}

// CreateArticleRequest is the request body for posting a link.
// Title is optional and defaults to the URL. The owner is always taken
// from the authenticated session, never from the body.
type CreateArticleRequest struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}
