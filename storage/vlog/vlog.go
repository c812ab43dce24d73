package vlog

import (
	"context"
	"time"
)

// MediaType is the category of a vlog's media file.
type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

// Valid reports whether the media type is one of the supported categories.
func (mt MediaType) Valid() bool {
	return mt == MediaTypeImage || mt == MediaTypeVideo
}

// Vlog is a single media post with its embedded comment thread.
type Vlog struct {
	ID         string    `json:"id" bson:"_id"`
	Title      string    `json:"title" bson:"title"`
	MediaType  MediaType `json:"mediaType" bson:"mediaType"`
	MediaPath  string    `json:"mediaPath" bson:"mediaPath"`
	UploadDate time.Time `json:"uploadDate" bson:"uploadDate"`
	Comments   []Comment `json:"comments" bson:"comments"`
}

// Comment belongs to exactly one vlog. Comments are append-only and not
// addressable on their own.
type Comment struct {
	Name string    `json:"name" bson:"name"`
	Text string    `json:"text" bson:"text"`
	Date time.Time `json:"date" bson:"date"`
}

// Store persists vlog documents. List returns vlogs newest-first.
// Get and AddComment return ErrNotFound for unknown ids. AddComment
// appends atomically with respect to concurrent appends on the same vlog.
type Store interface {
	Create(ctx context.Context, title string, mediaType MediaType, mediaPath string) (*Vlog, error)
	List(ctx context.Context) ([]Vlog, error)
	Get(ctx context.Context, id string) (*Vlog, error)
	AddComment(ctx context.Context, id string, name string, text string) (*Vlog, error)
	Close(ctx context.Context) error
}

// normalize guards the wire contract: a vlog always marshals its comments
// as an array, never null.
func normalize(v *Vlog) {
	if v.Comments == nil {
		v.Comments = []Comment{}
	}
}
