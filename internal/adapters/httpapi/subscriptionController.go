package httpapi

import (
	"net/http"

	"socialgraph/internal/core/apperr"

	"github.com/gin-gonic/gin"
)

type SubscriptionController struct{ sc SubscriptionUseCase }

func NewSubscriptionController(sc SubscriptionUseCase) *SubscriptionController {
	return &SubscriptionController{sc: sc}
}

type followRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

func (ctl *SubscriptionController) Follow(c *gin.Context) {
	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		renderError(c, apperr.Validation("invalid input"))
		return
	}
	me, ok := currentUserID(c)
	if !ok {
		return
	}
	target, ok := parseID(c, req.UserID, "user_id")
	if !ok {
		return
	}

	sub, err := ctl.sc.Follow(c.Request.Context(), me, target)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

func (ctl *SubscriptionController) Unfollow(c *gin.Context) {
	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		renderError(c, apperr.Validation("invalid input"))
		return
	}
	me, ok := currentUserID(c)
	if !ok {
		return
	}
	target, ok := parseID(c, req.UserID, "user_id")
	if !ok {
		return
	}

	if err := ctl.sc.Unfollow(c.Request.Context(), me, target); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ctl *SubscriptionController) ListFollowing(c *gin.Context) {
	me, ok := currentUserID(c)
	if !ok {
		return
	}
	req, ok := pageRequest(c)
	if !ok {
		return
	}
	res, err := ctl.sc.ListFollowing(c.Request.Context(), me, req)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *SubscriptionController) ListFollowers(c *gin.Context) {
	me, ok := currentUserID(c)
	if !ok {
		return
	}
	req, ok := pageRequest(c)
	if !ok {
		return
	}
	res, err := ctl.sc.ListFollowers(c.Request.Context(), me, req)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *SubscriptionController) FollowStats(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	res, err := ctl.sc.FollowStats(c.Request.Context(), id)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
