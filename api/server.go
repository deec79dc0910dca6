package api

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Soptik1290/restaurant-menu-summarizer/menu"
)

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(summarizer *menu.Summarizer, log zerolog.Logger) *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; request logging happens in the pipeline
	r.Use(gin.Recovery())

	// Register resource routers
	RegisterMenuRoutes(r, summarizer, log)
	RegisterHealthRoutes(r)
	return r
}
