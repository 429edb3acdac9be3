// Copyright (c) 2025 Red Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package handlers

import (
	"net/http"
	"net/url"

	"github.com/gofiber/fiber/v2"
	uuid "github.com/gofrs/uuid"
	"github.com/gorilla/schema"

	"github.com/redsocial/api/internal/types"
	"github.com/redsocial/api/posts/errors"
	"github.com/redsocial/api/posts/models"
	"github.com/redsocial/api/posts/services"
)

// queryDecoder decodes pagination parameters from query strings
var queryDecoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}()

// PostHandler handles all post-related HTTP requests
type PostHandler struct {
	postService services.PostService
}

// NewPostHandler creates a new PostHandler with injected dependencies
func NewPostHandler(postService services.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// DecodePageQuery extracts page/per_page from the request query string
func DecodePageQuery(c *fiber.Ctx) types.PageQuery {
	var page types.PageQuery
	values, err := url.ParseQuery(string(c.Request().URI().QueryString()))
	if err == nil {
		// Decode errors fall back to defaults via Normalize
		_ = queryDecoder.Decode(&page, values)
	}
	page.Normalize()
	return page
}

// GetFeed returns the paginated post feed
// Endpoint: GET /posts?page=1&per_page=10
func (h *PostHandler) GetFeed(c *fiber.Ctx) error {
	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return errors.HandleInvalidRequestError(c, "Invalid user context")
	}

	resp, err := h.postService.GetFeed(c.Context(), user.UserID, DecodePageQuery(c))
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(resp)
}

// CreatePost creates a new post for the caller
// Endpoint: POST /posts
func (h *PostHandler) CreatePost(c *fiber.Ctx) error {
	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return errors.HandleInvalidRequestError(c, "Invalid user context")
	}

	var req models.CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleInvalidRequestError(c, "Invalid request body")
	}

	resp, err := h.postService.CreatePost(c.Context(), user, req)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Post created",
		"post":    resp,
	})
}

// DeletePost deletes a post owned by the caller
// Endpoint: DELETE /posts/:postId
func (h *PostHandler) DeletePost(c *fiber.Ctx) error {
	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return errors.HandleInvalidRequestError(c, "Invalid user context")
	}

	postID, err := uuid.FromString(c.Params("postId"))
	if err != nil {
		return errors.HandleUUIDError(c, "postId")
	}

	if err := h.postService.DeletePost(c.Context(), user.UserID, postID); err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Post deleted",
	})
}

// GetComments lists the comments on a post
// Endpoint: GET /posts/:postId/comments
func (h *PostHandler) GetComments(c *fiber.Ctx) error {
	postID, err := uuid.FromString(c.Params("postId"))
	if err != nil {
		return errors.HandleUUIDError(c, "postId")
	}

	comments, err := h.postService.GetComments(c.Context(), postID)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(comments)
}

// DeleteComment deletes a comment owned by the caller
// Endpoint: DELETE /posts/comments/:commentId
func (h *PostHandler) DeleteComment(c *fiber.Ctx) error {
	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return errors.HandleInvalidRequestError(c, "Invalid user context")
	}

	commentID, err := uuid.FromString(c.Params("commentId"))
	if err != nil {
		return errors.HandleUUIDError(c, "commentId")
	}

	if err := h.postService.DeleteComment(c.Context(), user.UserID, commentID); err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Comment deleted",
	})
}
