package models

import (
	"time"

	"github.com/lib/pq"
)

// User is an account. Password-based accounts have a PasswordHash,
// Google accounts have a GoogleID; linked accounts have both.
type User struct {
	UserID       string    `json:"_id" db:"user_id"`
	Email        string    `json:"email" db:"email"`
	Name         string    `json:"name" db:"name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	GoogleID     *string   `json:"googleId" db:"google_id"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

func (u *User) HasGoogleID() bool {
	return u.GoogleID != nil && *u.GoogleID != ""
}

// Post is a shared memory. Name is the author display name copied at creation.
type Post struct {
	PostID       string         `json:"_id" db:"post_id"`
	Title        string         `json:"title" db:"title"`
	Message      string         `json:"message" db:"message"`
	Name         string         `json:"name" db:"name"`
	CreatorID    string         `json:"creator" db:"creator_id"`
	Tags         pq.StringArray `json:"tags" db:"tags"`
	SelectedFile string         `json:"selectedFile" db:"selected_file"`
	Likes        pq.StringArray `json:"likes" db:"likes"`
	CreatedAt    time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time      `json:"-" db:"updated_at"`
	Comments     []Comment      `json:"comments" db:"-"`
}

type Comment struct {
	CommentID  string    `json:"_id" db:"comment_id"`
	PostID     string    `json:"-" db:"post_id"`
	Text       string    `json:"text" db:"text"`
	AuthorID   string    `json:"authorId" db:"author_id"`
	AuthorName string    `json:"authorName" db:"author_name"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	Replies    []Reply   `json:"replies" db:"-"`
}

type Reply struct {
	ReplyID    string    `json:"_id" db:"reply_id"`
	CommentID  string    `json:"-" db:"comment_id"`
	Text       string    `json:"text" db:"text"`
	AuthorID   string    `json:"authorId" db:"author_id"`
	AuthorName string    `json:"authorName" db:"author_name"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// Normalize replaces nil slices so the post always serialises arrays.
func (p *Post) Normalize() {
	if p.Tags == nil {
		p.Tags = pq.StringArray{}
	}
	if p.Likes == nil {
		p.Likes = pq.StringArray{}
	}
	if p.Comments == nil {
		p.Comments = []Comment{}
	}
	for i := range p.Comments {
		if p.Comments[i].Replies == nil {
			p.Comments[i].Replies = []Reply{}
		}
	}
}

// HasLike reports whether userID is in the likes set.
func (p *Post) HasLike(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// ToggleLike removes userID from likes if present, otherwise appends it.
// It returns true when the user now likes the post.
func (p *Post) ToggleLike(userID string) bool {
	if p.HasLike(userID) {
		likes := make(pq.StringArray, 0, len(p.Likes))
		for _, id := range p.Likes {
			if id != userID {
				likes = append(likes, id)
			}
		}
		p.Likes = likes
		return false
	}

	p.Likes = append(p.Likes, userID)
	return true
}

type PostsPage struct {
	Posts         []*Post `json:"data"`
	CurrentPage   int     `json:"currentPage"`
	NumberOfPages int     `json:"numberOfPages"`
}
