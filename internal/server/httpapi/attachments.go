package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type uploadRequest struct {
	FileName string `json:"fileName"`
}

func (s *Server) handleRequestUpload(c *gin.Context) {
	var req uploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	ticket, err := s.attachments.RequestUpload(c.Request.Context(), userID(c), c.Param("id"), req.FileName)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"attachmentId": ticket.AttachmentID, "uploadUrl": ticket.URL})
}

func (s *Server) handleListAttachments(c *gin.Context) {
	list, err := s.attachments.ListAttachments(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"attachments": toAttachmentViews(list)})
}

func (s *Server) handleMarkUploaded(c *gin.Context) {
	if err := s.attachments.MarkUploaded(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleDownloadURL(c *gin.Context) {
	url, err := s.attachments.DownloadURL(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
