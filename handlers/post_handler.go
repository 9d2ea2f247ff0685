package handlers

import (
	"blog-platform/helper"
	"blog-platform/middleware"
	"blog-platform/models"
	"blog-platform/services"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postService services.PostService
	Helper      *helper.HTTPHelper
}

func NewPostHandler(postService services.PostService, httpHelper *helper.HTTPHelper) *PostHandler {
	return &PostHandler{postService: postService, Helper: httpHelper}
}

func (h *PostHandler) GetPosts(c *gin.Context) {
	var params models.PostListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, "Invalid query parameters", h.Helper.EmptyJsonMap())
		return
	}

	posts, total, applied, err := h.postService.GetPosts(c.Request.Context(), params)
	if err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Posts loaded", gin.H{
		"posts":      posts,
		"pagination": h.Helper.GeneratePaging(c, applied.Limit, applied.Page, int(total)),
	})
}

func (h *PostHandler) GetMyPosts(c *gin.Context) {
	response, err := h.postService.GetMyPosts(c.Request.Context(), middleware.CurrentIdentity(c))
	if err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Posts loaded", response)
}

func (h *PostHandler) GetMyPost(c *gin.Context) {
	id, err := helper.ParseID(c.Param("id"))
	if err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	post, err := h.postService.GetOwnPost(c.Request.Context(), id, middleware.CurrentIdentity(c))
	if err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Post loaded", post)
}

func (h *PostHandler) GetPost(c *gin.Context) {
	id, err := helper.ParseID(c.Param("id"))
	if err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	post, err := h.postService.GetPost(c.Request.Context(), id, middleware.CurrentIdentity(c))
	if err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Post loaded", post)
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	var req models.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, "Invalid request body", h.Helper.EmptyJsonMap())
		return
	}

	post, err := h.postService.CreatePost(c.Request.Context(), middleware.CurrentIdentity(c), req)
	if err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	h.Helper.SendCreated(c, "Post created", post)
}

func (h *PostHandler) UpdatePost(c *gin.Context) {
	id, err := helper.ParseID(c.Param("id"))
	if err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	var req models.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// an unreadable body fails validation, after the ownership check
		req = models.UpdatePostRequest{}
	}

	post, err := h.postService.UpdatePost(c.Request.Context(), id, middleware.CurrentIdentity(c), req)
	if err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Post updated", post)
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	id, err := helper.ParseID(c.Param("id"))
	if err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	if err := h.postService.DeletePost(c.Request.Context(), id, middleware.CurrentIdentity(c)); err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Post deleted", h.Helper.EmptyJsonMap())
}
