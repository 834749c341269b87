package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"bookstore-catalog/internal/domains/book/model"
	"bookstore-catalog/internal/domains/book/service"
	"bookstore-catalog/internal/shared/response"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportFilename  = "books.xlsx"
)

// BookHandler - HTTP handler for books
type BookHandler struct {
	bookService service.ServiceInterface
}

func NewBookHandler(bookService service.ServiceInterface) *BookHandler {
	return &BookHandler{bookService: bookService}
}

// CreateBook - POST /books
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req model.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	book, err := h.bookService.Create(c.Request.Context(), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Created(c, book)
}

// ListBooks - GET /books
func (h *BookHandler) ListBooks(c *gin.Context) {
	books, err := h.bookService.List(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, books)
}

// GetBook - GET /books/:id
func (h *BookHandler) GetBook(c *gin.Context) {
	book, err := h.bookService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, book)
}

// GetBaseBook - GET /books/base/:id
func (h *BookHandler) GetBaseBook(c *gin.Context) {
	summary, err := h.bookService.GetSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, summary)
}

// UpdateBook - PUT /books/:id
func (h *BookHandler) UpdateBook(c *gin.Context) {
	var req model.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	book, err := h.bookService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, book)
}

// DeleteBook - DELETE /books/:id
func (h *BookHandler) DeleteBook(c *gin.Context) {
	if err := h.bookService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.HandleError(c, err)
		return
	}
	response.NoContent(c)
}

// ExportBooks - GET /books/export
// Streams every assembled book as an XLSX workbook.
func (h *BookHandler) ExportBooks(c *gin.Context) {
	f, err := h.bookService.ExportExcel(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}
	defer f.Close()

	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", "attachment; filename="+exportFilename)
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		// headers are already sent; all that is left is to log
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("failed to write books export")
	}
}
