package handler

import (
	"github.com/gin-gonic/gin"

	"bookstore-catalog/internal/domains/bookstore/model"
	"bookstore-catalog/internal/domains/bookstore/service"
	"bookstore-catalog/internal/shared/response"
)

type BookstoreHandler struct {
	service service.ServiceInterface
}

func NewBookstoreHandler(svc service.ServiceInterface) *BookstoreHandler {
	return &BookstoreHandler{service: svc}
}

// Create - POST /bookstores
func (h *BookstoreHandler) Create(c *gin.Context) {
	var req model.CreateBookstoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Created(c, resp)
}

// List - GET /bookstores
func (h *BookstoreHandler) List(c *gin.Context) {
	resp, err := h.service.List(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, resp)
}

// Get - GET /bookstores/:id
func (h *BookstoreHandler) Get(c *gin.Context) {
	resp, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, resp)
}

// GetBase - GET /bookstores/base/:id
func (h *BookstoreHandler) GetBase(c *gin.Context) {
	resp, err := h.service.GetSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, resp)
}

// Update - PUT /bookstores/:id
func (h *BookstoreHandler) Update(c *gin.Context) {
	var req model.UpdateBookstoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	resp, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, resp)
}

// Delete - DELETE /bookstores/:id
func (h *BookstoreHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.HandleError(c, err)
		return
	}
	response.NoContent(c)
}

// AddBook - POST /bookstores/:id/books/:bookId
func (h *BookstoreHandler) AddBook(c *gin.Context) {
	resp, err := h.service.AddBook(c.Request.Context(), c.Param("id"), c.Param("bookId"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, resp)
}

// RemoveBook - DELETE /bookstores/:id/books/:bookId
func (h *BookstoreHandler) RemoveBook(c *gin.Context) {
	resp, err := h.service.RemoveBook(c.Request.Context(), c.Param("id"), c.Param("bookId"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, resp)
}
