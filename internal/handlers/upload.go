package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brokermate/brokermate-backend/internal/apierr"
	"github.com/brokermate/brokermate-backend/internal/services"
)

type UploadHandler struct {
	bucketService services.BucketService
}

func NewUploadHandler(bucketService services.BucketService) *UploadHandler {
	return &UploadHandler{bucketService: bucketService}
}

// POST /api/documents accepts a multipart form with "file" and "path" fields.
func (uh *UploadHandler) UploadPdf(c *gin.Context) {
	if uh.bucketService == nil {
		RespondError(c, http.StatusServiceUnavailable, apierr.CodeStorage, errors.New("document storage is not configured"))
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidArgument, err)
		return
	}
	destinationPath := c.PostForm("path")
	if destinationPath == "" {
		destinationPath = fileHeader.Filename
	}
	file, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidArgument, err)
		return
	}
	defer file.Close()

	url, err := uh.bucketService.UploadPdf(c.Request.Context(), file, destinationPath)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"url": url})
}
