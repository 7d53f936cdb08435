package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vignesh-a-nt07/fullstack-devops-project/internal/outlook_client"
)

type MailHandler interface {
	GetOutlookMessages(c *gin.Context)
}

type mailHandler struct {
	outlookClient *outlook_client.Client
	logger        *zap.Logger
}

func NewMailHandler(outlookClient *outlook_client.Client, logger *zap.Logger) MailHandler {
	return &mailHandler{outlookClient: outlookClient, logger: logger}
}

// GetOutlookMessages handles GET /api/v1/mail/outlook/messages. Graph is an
// upstream dependency here, so its failures surface as 502, not 500.
func (h *mailHandler) GetOutlookMessages(c *gin.Context) {
	top, err := strconv.Atoi(c.DefaultQuery("top", "10"))
	if err != nil || top < 1 || top > 50 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "top must be between 1 and 50"})
		return
	}

	query := outlook_client.MessageQuery{
		Mailbox:         c.Query("mailbox"),
		Top:             top,
		SubjectContains: c.Query("subject"),
		FromAddress:     c.Query("from_address"),
	}

	messages, err := h.outlookClient.GetRecentMessages(c.Request.Context(), query)
	if err != nil {
		if errors.Is(err, outlook_client.ErrMailboxRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to fetch outlook messages", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch messages"})
		return
	}

	c.JSON(http.StatusOK, messages)
}
