package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NoRoute answers requests for unknown paths.
func NoRoute(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: http.StatusText(http.StatusNotFound)})
}

// NoMethod answers requests whose path exists under a different method.
func NoMethod(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, ErrorResponse{Error: http.StatusText(http.StatusMethodNotAllowed)})
}
