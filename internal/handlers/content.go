package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/brainly/internal/apperr"
	"github.com/thereayou/brainly/internal/handlers/dto"
	"github.com/thereayou/brainly/internal/middleware"
	"github.com/thereayou/brainly/internal/services"
)

type ContentHandler struct {
	contents       *services.ContentService
	maxUploadBytes int64
}

func NewContentHandler(contents *services.ContentService, maxUploadBytes int64) *ContentHandler {
	return &ContentHandler{contents: contents, maxUploadBytes: maxUploadBytes}
}

func (h *ContentHandler) List(c *gin.Context) {
	items, err := h.contents.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"content": dto.NewContentList(items)})
}

// Create accepts multipart/form-data (title, type, link or file) or JSON for link kinds.
func (h *ContentHandler) Create(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	var req dto.CreateContentRequest
	if err := c.ShouldBind(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(c, apperr.Validation("File is too large"))
			return
		}
		respondError(c, apperr.Validation("Invalid input"))
		return
	}

	in := services.CreateContentRequest{
		Title: req.Title,
		Kind:  req.ContentKind(),
		Link:  req.Link,
	}

	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			respondError(c, apperr.Validation("Unable to read uploaded file"))
			return
		}
		defer f.Close()
		in.File = &services.Upload{Filename: fh.Filename, Body: f}
	}

	content, err := h.contents.Create(c.Request.Context(), middleware.UserID(c), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Content added successfully",
		"content": dto.NewContentResponse(*content),
	})
}

func (h *ContentHandler) Delete(c *gin.Context) {
	var req dto.DeleteContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("Content ID is required"))
		return
	}

	if err := h.contents.Delete(c.Request.Context(), middleware.UserID(c), req.ContentID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Content deleted successfully"})
}

func (h *ContentHandler) Search(c *gin.Context) {
	items, err := h.contents.Search(c.Request.Context(), middleware.UserID(c), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": dto.NewContentList(items)})
}
