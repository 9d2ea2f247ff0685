package handlers

import (
	"blog-platform/helper"
	"blog-platform/services"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	uploadService services.UploadService
	Helper        *helper.HTTPHelper
}

func NewUploadHandler(uploadService services.UploadService, httpHelper *helper.HTTPHelper) *UploadHandler {
	return &UploadHandler{uploadService: uploadService, Helper: httpHelper}
}

func (h *UploadHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		h.Helper.SendFieldError(c, "image", "No file was uploaded")
		return
	}

	uploaded, err := h.uploadService.UploadImage(c.Request.Context(), file)
	if err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	h.Helper.SendCreated(c, "File uploaded", uploaded)
}
