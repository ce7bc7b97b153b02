package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"weatherchat.app/models"
)

const indexPage = "public/index.html"

// ServeStaticFiles configures routes for the browser UI
func (s *Server) ServeStaticFiles() {
	s.router.GET("/", func(c *gin.Context) {
		c.File(indexPage)
	})

	s.router.StaticFS("/static", http.Dir("public"))

	// Unknown API paths stay JSON errors; anything else lands on the page
	s.router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "not found"})
			return
		}
		c.File(indexPage)
	})
}
