package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/registry/internal/model"
)

// fieldFilter reads the optional ?field=<name>&value=<v> list filter.
// ok is false when no field was requested.
func fieldFilter(c *gin.Context) (field model.Field, value string, ok bool) {
	name := c.Query("field")
	if name == "" {
		return "", "", false
	}
	return model.Field(name), c.Query("value"), true
}

// numericValue converts a query value for numeric fields. Unparseable input
// stays a string, which matches nothing numeric.
func numericValue(raw string) any {
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}
