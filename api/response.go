package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Domenick1991/airbooking/internal/auth"
	"github.com/Domenick1991/airbooking/internal/domain"
	"github.com/Domenick1991/airbooking/internal/middleware"
	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

type listResponse struct {
	Count   int `json:"count"`
	Results any `json:"results"`
}

// writeError maps domain errors to status codes. Unknown errors become a bare 500; the detail goes to the access log.
func writeError(c *gin.Context, err error) {
	var (
		rangeErr *domain.RangeError
		valErr   *domain.ValidationError
	)

	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, errorResponse{Error: err.Error()})
	case errors.Is(err, auth.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, errorResponse{Error: auth.ErrUnauthorized.Error()})
	case errors.As(err, &rangeErr):
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error(), Field: rangeErr.Field})
	case errors.As(err, &valErr):
		c.JSON(http.StatusBadRequest, errorResponse{Error: valErr.Message, Field: valErr.Field})
	case domain.IsClientError(err):
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, errorResponse{Error: msg})
}

func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, errorResponse{Error: "not found"})
		return 0, false
	}
	return id, true
}

// maxPage bounds ?page so the offset stays far from int overflow at any limit.
const maxPage = 1_000_000

// parsePage reads ?page (1-based) and ?limit.
func parsePage(c *gin.Context) (domain.Page, bool) {
	limit := domain.DefaultPageLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			badRequest(c, "limit must be a positive integer")
			return domain.Page{}, false
		}
		limit = n
	}

	page := 1
	if v := c.Query("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			badRequest(c, "page must be a positive integer")
			return domain.Page{}, false
		}
		if n > maxPage {
			badRequest(c, "page is out of range")
			return domain.Page{}, false
		}
		page = n
	}

	p := domain.Page{Limit: limit}.Normalize()
	p.Offset = (page - 1) * p.Limit
	return p, true
}

func parseOptionalID(c *gin.Context, name string) (int64, bool) {
	v := c.Query(name)
	if v == "" {
		return 0, true
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, name+" must be a positive integer id")
		return 0, false
	}
	return id, true
}

func principal(c *gin.Context) (auth.Principal, bool) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: auth.ErrUnauthorized.Error()})
		return auth.Principal{}, false
	}
	return *p, true
}
