// Package status serves the discovery document and the health payload.
package status

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Version is the reported API version, overridable at build time with
// -ldflags "-X .../internal/status.Version=...".
var Version = "0.1.0"

const documentationURL = "https://github.com/karahanbuhan/besinveri"

// Health payloads timestamp in Turkish local time, a fixed UTC+3 offset.
var turkishZone = time.FixedZone("UTC+3", 3*60*60)

type Handler struct {
	baseURL string
	now     func() time.Time
}

func NewHandler(baseURL string) *Handler {
	return &Handler{baseURL: strings.TrimSuffix(baseURL, "/"), now: time.Now}
}

//
// --------------------------------------------------
// GET / (discovery document)
// --------------------------------------------------
//

func (h *Handler) Endpoints() gin.HandlerFunc {
	// The document is static per configuration; map keys marshal sorted,
	// so the payload is deterministic.
	endpoints := map[string]string{
		"api_health_url":     fmt.Sprintf("%s/health", h.baseURL),
		"list_all_foods_url": fmt.Sprintf("%s/foods", h.baseURL),
		"get_food_url":       fmt.Sprintf("%s/food/{slug}", h.baseURL),
		"list_all_tags_url":  fmt.Sprintf("%s/tags", h.baseURL),
		"search_food_url":    fmt.Sprintf("%s/foods/search?query={query}&mode={description, tag}&limit={limit}", h.baseURL),
	}

	return func(c *gin.Context) {
		c.JSON(http.StatusOK, endpoints)
	}
}

//
// --------------------------------------------------
// GET /health
// --------------------------------------------------
//

type health struct {
	Name          string `json:"name"`
	Version       string `json:"version"`
	Status        string `json:"status"`
	Documentation string `json:"documentation"`
	LastUpdated   string `json:"last_updated"`
}

func (h *Handler) Health() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, health{
			Name:          "BesinVeri API",
			Version:       Version,
			Status:        "iyi",
			Documentation: documentationURL,
			LastUpdated:   h.now().In(turkishZone).Format(time.RFC3339Nano),
		})
	}
}
