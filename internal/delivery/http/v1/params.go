package v1

import (
	"fmt"
	"strconv"

	"go-candidate-backend/internal/domain"
	"go-candidate-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// TotalCountHeader carries the number of candidates on list responses.
const TotalCountHeader = "X-Total-Count"

func parseID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.BadRequest(fmt.Sprintf("Invalid %s ID", name))
	}
	return id, nil
}

func parsePage(c *gin.Context) (domain.Page, error) {
	skip, err := queryInt(c, "skip", 0)
	if err != nil {
		return domain.Page{}, err
	}
	limit, err := queryInt(c, "limit", domain.DefaultPageLimit)
	if err != nil {
		return domain.Page{}, err
	}
	page, err := domain.NewPage(skip, limit)
	if err != nil {
		return domain.Page{}, apperror.BadRequest("skip and limit must be non-negative integers")
	}
	return page, nil
}

func queryInt(c *gin.Context, key string, def int) (int, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.BadRequest(fmt.Sprintf("%s must be an integer", key))
	}
	return v, nil
}

func bindJSON(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return apperror.BadRequest("Invalid request body")
	}
	return nil
}
