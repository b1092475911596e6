package httpapi

import (
	"errors"
	"net/http"
	"time"

	"socialgraph/internal/core/apperr"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
)

type PostController struct{ pc PostUseCase }

func NewPostController(pc PostUseCase) *PostController { return &PostController{pc: pc} }

func (ctl *PostController) CreatePost(c *gin.Context) {
	var req struct {
		Title   string `json:"title" binding:"required"`
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		renderError(c, apperr.Validation("invalid input"))
		return
	}
	me, ok := currentUserID(c)
	if !ok {
		return
	}
	res, err := ctl.pc.CreatePost(c.Request.Context(), me, req.Title, req.Content)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (ctl *PostController) GetPost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := ctl.pc.GetPost(c.Request.Context(), id)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeletePost soft-deletes a post owned by the caller. A post that is already
// gone answers 204 as well.
func (ctl *PostController) DeletePost(c *gin.Context) {
	me, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	p, err := ctl.pc.GetPost(c.Request.Context(), id)
	if errors.Is(err, apperr.ErrNotFound) {
		c.Status(http.StatusNoContent)
		return
	}
	if err != nil {
		renderError(c, err)
		return
	}
	if p.UserID != me {
		renderError(c, apperr.Forbidden("only the author can delete a post"))
		return
	}

	if err := ctl.pc.SoftDelete(c.Request.Context(), id); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListAll serves the global reverse-chronological listing, or an inclusive
// date range when ?from= and ?to= (RFC 3339) are given.
func (ctl *PostController) ListAll(c *gin.Context) {
	req, ok := pageRequest(c)
	if !ok {
		return
	}

	from, to := c.Query("from"), c.Query("to")
	if from == "" && to == "" {
		res, err := ctl.pc.ListAll(c.Request.Context(), req)
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
		return
	}

	start, err := time.Parse(time.RFC3339, from)
	if err != nil {
		renderError(c, apperr.Validation("invalid from"))
		return
	}
	end, err := time.Parse(time.RFC3339, to)
	if err != nil {
		renderError(c, apperr.Validation("invalid to"))
		return
	}
	res, err := ctl.pc.FindInDateRange(c.Request.Context(), start.UTC(), end.UTC(), req)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *PostController) ListByAuthor(c *gin.Context) {
	author, ok := pathID(c, "id")
	if !ok {
		return
	}
	req, ok := pageRequest(c)
	if !ok {
		return
	}
	res, err := ctl.pc.ListByAuthor(c.Request.Context(), author, req)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *PostController) AddImage(c *gin.Context) {
	var req struct {
		URL      string `json:"url" binding:"required"`
		FileName string `json:"file_name" binding:"required"`
		FileSize *int64 `json:"file_size"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		renderError(c, apperr.Validation("invalid input"))
		return
	}
	me, ok := currentUserID(c)
	if !ok {
		return
	}
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if !ctl.requireAuthor(c, postID, me) {
		return
	}

	img, err := ctl.pc.AddImage(c.Request.Context(), postID, req.URL, req.FileName, req.FileSize)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, img)
}

func (ctl *PostController) ListImages(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	images, err := ctl.pc.ListImages(c.Request.Context(), postID)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"images": images})
}

func (ctl *PostController) RemoveImage(c *gin.Context) {
	me, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	img, err := ctl.pc.GetImage(c.Request.Context(), id)
	if errors.Is(err, apperr.ErrNotFound) {
		c.Status(http.StatusNoContent)
		return
	}
	if err != nil {
		renderError(c, err)
		return
	}
	if !ctl.requireAuthor(c, img.PostID, me) {
		return
	}

	if err := ctl.pc.RemoveImage(c.Request.Context(), id); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ctl *PostController) requireAuthor(c *gin.Context, postID, userID uuid.UUID) bool {
	p, err := ctl.pc.GetPost(c.Request.Context(), postID)
	if err != nil {
		renderError(c, err)
		return false
	}
	if p.UserID != userID {
		renderError(c, apperr.Forbidden("only the author can change a post"))
		return false
	}
	return true
}
