package api

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Soptik1290/restaurant-menu-summarizer/menu"
	"github.com/Soptik1290/restaurant-menu-summarizer/menuerr"
	"github.com/Soptik1290/restaurant-menu-summarizer/types"
)

// RegisterMenuRoutes registers the menu summarization endpoint.
func RegisterMenuRoutes(r *gin.Engine, summarizer *menu.Summarizer, log zerolog.Logger) {
	ctrl := &menuController{
		summarizer: summarizer,
		log:        log.With().Str("component", "api").Logger(),
	}
	r.POST("/menu/summarize", ctrl.handleSummarize)
}

type menuController struct {
	summarizer *menu.Summarizer
	log        zerolog.Logger
}

// handleSummarize runs the extraction pipeline for the submitted URL and
// maps pipeline failures onto the HTTP error taxonomy.
func (ctrl *menuController) handleSummarize(c *gin.Context) {
	var req types.SummarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error: "request body must be JSON with a url field",
			Kind:  string(menuerr.KindInvalidInput),
		})
		return
	}

	if !isValidAbsoluteURL(req.URL) {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error: "url must be an absolute http or https URL",
			Kind:  string(menuerr.KindInvalidInput),
		})
		return
	}

	result, err := ctrl.summarizer.Summarize(c.Request.Context(), req.URL)
	if err != nil {
		kind := menuerr.Classify(err)
		status := menuerr.HTTPStatus(err)
		ctrl.log.Error().
			Str("url", req.URL).
			Str("kind", string(kind)).
			Int("status", status).
			Err(err).
			Msg("Summarization failed")
		c.JSON(status, types.ErrorResponse{
			Error: err.Error(),
			Kind:  string(kind),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

func isValidAbsoluteURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
