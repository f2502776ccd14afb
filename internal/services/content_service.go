package services

import (
	"context"
	"errors"
	"io"
	"net/url"
	"strings"

	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/thereayou/brainly/internal/apperr"
	"github.com/thereayou/brainly/internal/logger"
	"github.com/thereayou/brainly/internal/models"
	"github.com/thereayou/brainly/internal/storage"
)

// FileStore persists uploaded documents and returns a server-relative link.
type FileStore interface {
	Save(r io.Reader, originalName string) (string, error)
	Remove(link string) error
}

// Upload is a document payload received with a create request.
type Upload struct {
	Filename string
	Body     io.Reader
}

type CreateContentRequest struct {
	Title string
	Kind  string
	Link  string
	File  *Upload
}

type ContentService struct {
	contents storage.ContentStore
	files    FileStore
	validate *validator.Validate
}

func NewContentService(contents storage.ContentStore, files FileStore) *ContentService {
	return &ContentService{
		contents: contents,
		files:    files,
		validate: validator.New(),
	}
}

func (s *ContentService) Create(ctx context.Context, ownerID uuid.UUID, req CreateContentRequest) (*models.Content, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperr.Validation("Title is required")
	}

	kind, ok := models.ParseContentKind(req.Kind)
	if !ok {
		return nil, apperr.Validation("Invalid content type provided.")
	}

	content := &models.Content{
		ID:     uuid.New(),
		UserID: ownerID,
		Title:  title,
		Kind:   kind,
	}

	if kind != models.KindDocument {
		link := strings.TrimSpace(req.Link)
		if !s.isWebURL(link) {
			return nil, apperr.Validation("Invalid URL")
		}
		content.Link = link

		if err := s.contents.SaveContent(ctx, content); err != nil {
			return nil, apperr.Internal("save content", err)
		}
		return content, nil
	}

	if req.File == nil || req.File.Body == nil {
		return nil, apperr.Validation("File is required for document content")
	}

	link, err := s.files.Save(req.File.Body, req.File.Filename)
	if err != nil {
		return nil, apperr.Internal("store upload", err)
	}
	content.Link = link

	if err := s.contents.SaveContent(ctx, content); err != nil {
		if rmErr := s.files.Remove(link); rmErr != nil {
			logger.Log.Warnw("failed to remove orphaned upload", "link", link, zap.Error(rmErr))
		}
		return nil, apperr.Internal("save content", err)
	}

	return content, nil
}

func (s *ContentService) isWebURL(link string) bool {
	if s.validate.Var(link, "required,url") != nil {
		return false
	}
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func (s *ContentService) List(ctx context.Context, ownerID uuid.UUID) ([]models.Content, error) {
	items, err := s.contents.ListContent(ctx, ownerID)
	if err != nil {
		return nil, apperr.Internal("list content", err)
	}
	return items, nil
}

// Search matches term as a case-insensitive substring of title or type.
func (s *ContentService) Search(ctx context.Context, ownerID uuid.UUID, term string) ([]models.Content, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, apperr.Validation("Search term is required")
	}

	items, err := s.contents.SearchContent(ctx, ownerID, term)
	if err != nil {
		return nil, apperr.Internal("search content", err)
	}
	return items, nil
}

// Delete removes the caller's content. The backing file of a document is
// removed before the row; the row delete is itself scoped to the owner.
func (s *ContentService) Delete(ctx context.Context, ownerID uuid.UUID, contentID string) error {
	id, err := uuid.Parse(strings.TrimSpace(contentID))
	if err != nil {
		return apperr.Validation("Invalid content ID format")
	}

	content, err := s.contents.GetOwnedContent(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperr.NotFound("Content not found or not authorized")
		}
		return apperr.Internal("load content", err)
	}

	if content.Kind == models.KindDocument {
		if err := s.files.Remove(content.Link); err != nil {
			logger.Log.Warnw("failed to remove upload", "link", content.Link, zap.Error(err))
		}
	}

	deleted, err := s.contents.DeleteOwnedContent(ctx, id, ownerID)
	if err != nil {
		return apperr.Internal("delete content", err)
	}
	if deleted == 0 {
		return apperr.NotFound("Content not found or not authorized")
	}

	return nil
}
