package httpapi

import (
	"context"
	"net/http"
	"strings"

	"socialgraph/internal/core/apperr"
	friendshipEntity "socialgraph/internal/core/friendship"
	"socialgraph/internal/core/page"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
)

type FriendshipController struct{ fc FriendshipUseCase }

func NewFriendshipController(fc FriendshipUseCase) *FriendshipController {
	return &FriendshipController{fc: fc}
}

func (ctl *FriendshipController) Request(c *gin.Context) {
	var req struct {
		AddresseeID string `json:"addressee_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		renderError(c, apperr.Validation("invalid input"))
		return
	}
	me, ok := currentUserID(c)
	if !ok {
		return
	}
	addressee, ok := parseID(c, req.AddresseeID, "addressee_id")
	if !ok {
		return
	}

	f, err := ctl.fc.Request(c.Request.Context(), me, addressee)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, f)
}

// Respond is only allowed for the addressee of the request.
func (ctl *FriendshipController) Respond(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		renderError(c, apperr.Validation("invalid input"))
		return
	}
	me, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	existing, err := ctl.fc.Get(c.Request.Context(), id)
	if err != nil {
		renderError(c, err)
		return
	}
	if existing.AddresseeID != me {
		renderError(c, apperr.Forbidden("only the addressee can respond to a friend request"))
		return
	}

	f, err := ctl.fc.Respond(c.Request.Context(), id, friendshipEntity.Status(strings.ToUpper(req.Status)))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

func (ctl *FriendshipController) Delete(c *gin.Context) {
	me, ok := currentUserID(c)
	if !ok {
		return
	}
	other, ok := pathID(c, "userId")
	if !ok {
		return
	}
	if err := ctl.fc.DeleteBetween(c.Request.Context(), me, other); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ctl *FriendshipController) Pending(c *gin.Context) {
	me, ok := currentUserID(c)
	if !ok {
		return
	}
	refs, err := ctl.fc.PendingRequesters(c.Request.Context(), me)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requesters": refs})
}

func (ctl *FriendshipController) Sent(c *gin.Context) {
	ctl.listByStatus(c, ctl.fc.ListSentByStatus)
}

func (ctl *FriendshipController) Received(c *gin.Context) {
	ctl.listByStatus(c, ctl.fc.ListReceivedByStatus)
}

type listByStatusFunc func(context.Context, uuid.UUID, friendshipEntity.Status, page.Request) (page.Page[*friendshipEntity.Friendship], error)

// listByStatus serves ?status= (default PENDING) plus paging for the current user.
func (ctl *FriendshipController) listByStatus(c *gin.Context, list listByStatusFunc) {
	me, ok := currentUserID(c)
	if !ok {
		return
	}
	req, ok := pageRequest(c)
	if !ok {
		return
	}
	status := friendshipEntity.Status(strings.ToUpper(c.DefaultQuery("status", string(friendshipEntity.StatusPending))))

	res, err := list(c.Request.Context(), me, status, req)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *FriendshipController) ListFriends(c *gin.Context) {
	id, ok := pathID(c, "userId")
	if !ok {
		return
	}
	refs, err := ctl.fc.ListFriends(c.Request.Context(), id)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"friends": refs})
}
