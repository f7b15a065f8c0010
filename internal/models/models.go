package models

import (
	"time"
)

type PostStatus string

const (
	PostStatusDraft     PostStatus = "DRAFT"
	PostStatusPublished PostStatus = "PUBLISHED"
)

type User struct {
	UserID       string    `json:"userId" db:"user_id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Name         string    `json:"name" db:"name"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// Identity is the resolved subject of a login or a bearer token.
type Identity struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

type Category struct {
	CategoryID string `json:"categoryId" db:"category_id"`
	Name       string `json:"name" db:"name"`
	PostCount  int64  `json:"postCount" db:"post_count"`
}

type Tag struct {
	TagID     string `json:"tagId" db:"tag_id"`
	Name      string `json:"name" db:"name"`
	PostCount int64  `json:"postCount" db:"post_count"`
}

type Post struct {
	PostID       string     `json:"postId" db:"post_id"`
	AuthorID     string     `json:"authorId" db:"author_id"`
	AuthorName   string     `json:"authorName" db:"author_name"`
	CategoryID   string     `json:"categoryId" db:"category_id"`
	CategoryName string     `json:"categoryName" db:"category_name"`
	Title        string     `json:"title" db:"title"`
	Content      string     `json:"content" db:"content"`
	Status       PostStatus `json:"status" db:"status"`
	ReadingTime  int        `json:"readingTime" db:"reading_time"`
	Latitude     float64    `json:"latitude" db:"latitude"`
	Longitude    float64    `json:"longitude" db:"longitude"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time  `json:"updatedAt" db:"updated_at"`
	Tags         []Tag      `json:"tags" db:"-"`
	Images       []Image    `json:"images" db:"-"`
}

// TagIDs returns the ids of the tags currently attached to the post.
func (p *Post) TagIDs() []string {
	ids := make([]string, 0, len(p.Tags))
	for _, tag := range p.Tags {
		ids = append(ids, tag.TagID)
	}
	return ids
}

type Image struct {
	ImageID    string    `json:"imageId" db:"image_id"`
	PostID     string    `json:"postId" db:"post_id"`
	ObjectName string    `json:"-" db:"object_name"`
	ImageURL   string    `json:"imageUrl" db:"image_url"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// PostFilter selects posts by status plus any combination of the optional
// category, tag and author predicates. Empty strings impose no predicate.
type PostFilter struct {
	Status     PostStatus
	CategoryID string
	TagID      string
	AuthorID   string
}

type CreatePostRequest struct {
	Title      string
	Content    string
	CategoryID string
	TagIDs     []string
	Status     PostStatus
	Latitude   float64
	Longitude  float64
}

type UpdatePostRequest struct {
	Title      string
	Content    string
	CategoryID string
	TagIDs     []string
	Status     PostStatus
	Latitude   float64
	Longitude  float64
}
