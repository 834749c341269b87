package handler

import (
	"github.com/gin-gonic/gin"

	"bookstore-catalog/internal/domains/publisher/model"
	"bookstore-catalog/internal/domains/publisher/service"
	"bookstore-catalog/internal/shared/response"
)

// PublisherHandler handles HTTP requests for publisher domain
type PublisherHandler struct {
	service service.ServiceInterface
}

func NewPublisherHandler(svc service.ServiceInterface) *PublisherHandler {
	return &PublisherHandler{service: svc}
}

// Create handles POST /publishers
func (h *PublisherHandler) Create(c *gin.Context) {
	var req model.CreatePublisherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	result, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Created(c, result)
}

// List handles GET /publishers
func (h *PublisherHandler) List(c *gin.Context) {
	result, err := h.service.List(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, result)
}

// Get handles GET /publishers/:id
func (h *PublisherHandler) Get(c *gin.Context) {
	result, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, result)
}

// GetBase handles GET /publishers/base/:id
func (h *PublisherHandler) GetBase(c *gin.Context) {
	result, err := h.service.GetSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, result)
}

// Update handles PUT /publishers/:id
func (h *PublisherHandler) Update(c *gin.Context) {
	var req model.UpdatePublisherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	result, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, result)
}

// Delete handles DELETE /publishers/:id
func (h *PublisherHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.HandleError(c, err)
		return
	}
	response.NoContent(c)
}
