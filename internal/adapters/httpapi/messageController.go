package httpapi

import (
	"errors"
	"net/http"

	"socialgraph/internal/core/apperr"
	messagePort "socialgraph/internal/ports/message"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
)

type MessageController struct{ mc MessageUseCase }

func NewMessageController(mc MessageUseCase) *MessageController {
	return &MessageController{mc: mc}
}

func (ctl *MessageController) Send(c *gin.Context) {
	var req struct {
		ReceiverID string `json:"receiver_id" binding:"required"`
		Content    string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		renderError(c, apperr.Validation("invalid input"))
		return
	}
	me, ok := currentUserID(c)
	if !ok {
		return
	}
	receiver, ok := parseID(c, req.ReceiverID, "receiver_id")
	if !ok {
		return
	}

	m, err := ctl.mc.Send(c.Request.Context(), me, receiver, req.Content)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (ctl *MessageController) Conversation(c *gin.Context) {
	me, ok := currentUserID(c)
	if !ok {
		return
	}
	other, ok := pathID(c, "userId")
	if !ok {
		return
	}
	req, ok := pageRequest(c)
	if !ok {
		return
	}
	res, err := ctl.mc.GetConversation(c.Request.Context(), me, other, req)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *MessageController) ListUnread(c *gin.Context) {
	me, ok := currentUserID(c)
	if !ok {
		return
	}
	messages, err := ctl.mc.ListAllUnread(c.Request.Context(), me)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

func (ctl *MessageController) CountUnread(c *gin.Context) {
	me, ok := currentUserID(c)
	if !ok {
		return
	}
	n, err := ctl.mc.CountUnread(c.Request.Context(), me)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, messagePort.UnreadCountDTO{UserID: me.String(), Unread: n})
}

// MarkRead accepts either {"sender_id"} to read a whole thread or {"ids": [...]}.
// Ids of messages the caller did not receive are skipped.
func (ctl *MessageController) MarkRead(c *gin.Context) {
	var req struct {
		SenderID string   `json:"sender_id"`
		IDs      []string `json:"ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		renderError(c, apperr.Validation("invalid input"))
		return
	}
	me, ok := currentUserID(c)
	if !ok {
		return
	}

	if req.SenderID != "" {
		sender, ok := parseID(c, req.SenderID, "sender_id")
		if !ok {
			return
		}
		n, err := ctl.mc.MarkReadBySenderReceiver(c.Request.Context(), me, sender)
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"updated": n})
		return
	}

	owned := make([]uuid.UUID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		id, ok := parseID(c, raw, "ids")
		if !ok {
			return
		}
		m, err := ctl.mc.Get(c.Request.Context(), id)
		if errors.Is(err, apperr.ErrNotFound) {
			continue
		}
		if err != nil {
			renderError(c, err)
			return
		}
		if m.ReceiverID == me {
			owned = append(owned, id)
		}
	}

	n, err := ctl.mc.MarkReadByIDs(c.Request.Context(), owned)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": n})
}
