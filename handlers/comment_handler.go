package handlers

import (
	"blog-platform/helper"
	"blog-platform/middleware"
	"blog-platform/models"
	"blog-platform/services"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService services.CommentService
	Helper         *helper.HTTPHelper
}

func NewCommentHandler(commentService services.CommentService, httpHelper *helper.HTTPHelper) *CommentHandler {
	return &CommentHandler{commentService: commentService, Helper: httpHelper}
}

func (h *CommentHandler) GetComments(c *gin.Context) {
	postID, err := helper.ParseID(c.Param("id"))
	if err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	response, err := h.commentService.GetComments(c.Request.Context(), postID, middleware.CurrentIdentity(c))
	if err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Comments loaded", response)
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	postID, err := helper.ParseID(c.Param("id"))
	if err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	var req models.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// an unreadable body fails validation, after the post status check
		req = models.CreateCommentRequest{}
	}

	comment, err := h.commentService.CreateComment(c.Request.Context(), postID, middleware.CurrentIdentity(c), req)
	if err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	h.Helper.SendCreated(c, "Comment created", comment)
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	id, err := helper.ParseID(c.Param("id"))
	if err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	if err := h.commentService.DeleteComment(c.Request.Context(), id, middleware.CurrentIdentity(c)); err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Comment deleted", h.Helper.EmptyJsonMap())
}
