package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/thereayou/brainly/internal/models"
)

// CreateContentRequest is bound from multipart/form-data or JSON. The file
// part of a document upload is read separately. "kind" is accepted as an
// alias of "type".
type CreateContentRequest struct {
	Title string `form:"title" json:"title"`
	Type  string `form:"type" json:"type"`
	Kind  string `form:"kind" json:"kind"`
	Link  string `form:"link" json:"link"`
}

func (r CreateContentRequest) ContentKind() string {
	if r.Type != "" {
		return r.Type
	}
	return r.Kind
}

type DeleteContentRequest struct {
	ContentID string `json:"contentId" binding:"required"`
}

type ContentResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Username  string    `json:"username,omitempty"`
	Title     string    `json:"title"`
	Link      string    `json:"link"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewContentResponse carries the owner's username only when the owner was loaded with the row.
func NewContentResponse(c models.Content) ContentResponse {
	return ContentResponse{
		ID:        c.ID,
		UserID:    c.UserID,
		Username:  c.User.Username,
		Title:     c.Title,
		Link:      c.Link,
		Type:      string(c.Kind),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// NewContentList never returns nil so the list encodes as [].
func NewContentList(items []models.Content) []ContentResponse {
	out := make([]ContentResponse, 0, len(items))
	for _, c := range items {
		out = append(out, NewContentResponse(c))
	}
	return out
}
