package handler

import (
	"github.com/gin-gonic/gin"

	"bookstore-catalog/internal/domains/search/service"
	"bookstore-catalog/internal/shared/response"
)

type SearchHandler struct {
	searchService service.ServiceInterface
}

func NewSearchHandler(searchService service.ServiceInterface) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// Search - GET /search/:entity?q=...
func (h *SearchHandler) Search(c *gin.Context) {
	results, err := h.searchService.Search(c.Request.Context(), c.Param("entity"), c.Query("q"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, response.Results[any]{Results: results})
}
