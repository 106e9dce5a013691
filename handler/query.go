package handler

import (
	"strconv"
	"strings"

	"github.com/ncobase/taskapi/structs"

	"github.com/gin-gonic/gin"
)

// parseListParams reads the listing filters from the query string. Values
// that are not positive integers fall back to the defaults; unknown status
// or priority values are passed through and simply match nothing.
func parseListParams(c *gin.Context) structs.ListTaskParams {
	params := structs.ListTaskParams{
		Status:   strings.TrimSpace(c.Query("status")),
		Priority: strings.TrimSpace(c.Query("priority")),
		Search:   c.Query("search"),
		Page:     positiveInt(c.Query("page"), structs.DefaultPage),
		Limit:    positiveInt(c.Query("limit"), structs.DefaultLimit),
		Sort:     strings.ToLower(strings.TrimSpace(c.Query("sort"))),
	}
	params.Normalize()
	return params
}

func positiveInt(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return def
	}
	return n
}
