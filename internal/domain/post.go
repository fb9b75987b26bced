package domain

import (
	"strings"
	"time"
)

// Author is the populated author of a post: id and name only.
type Author struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Comment is one entry of a post's comment list.
type Comment struct {
	ID        uint      `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Post represents a post entity.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	AuthorID  string    `json:"-"`
	Author    Author    `json:"author"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostPatchFields are the keys PATCH /post/:id accepts.
var PostPatchFields = []string{"title", "body", "author"}

// CreatePostRequest represents a create post request. Any author in the
// body is ignored; the post belongs to the caller.
type CreatePostRequest struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
}

// Normalize trims title and body.
func (r *CreatePostRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Body = strings.TrimSpace(r.Body)
}

// UpdatePostRequest is a decoded PATCH /post/:id body.
type UpdatePostRequest struct {
	Title  *string `json:"title" binding:"omitempty,min=1"`
	Body   *string `json:"body" binding:"omitempty,min=1"`
	Author *string `json:"author" binding:"omitempty,uuid"`
}

// Normalize trims the present fields.
func (r *UpdatePostRequest) Normalize() {
	for _, f := range []**string{&r.Title, &r.Body, &r.Author} {
		if *f != nil {
			v := strings.TrimSpace(**f)
			*f = &v
		}
	}
}

// CommentInput is one comment in an add-comments request.
type CommentInput struct {
	Text      string     `json:"text" binding:"required"`
	CreatedAt *time.Time `json:"created_at"`
}

// AddCommentsRequest represents POST /post/:id/comment.
type AddCommentsRequest struct {
	Comments []CommentInput `json:"comments" binding:"required,dive"`
}

// PostEnvelope wraps a single post in API responses.
type PostEnvelope struct {
	Post *Post `json:"post"`
}

// PostList wraps a post list in API responses.
type PostList struct {
	Posts []Post `json:"posts"`
}
