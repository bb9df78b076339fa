package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tripplanner/internal/catalog"
	"tripplanner/internal/domain"
)

var errInvalidQuery = errors.New("invalid query parameter")

// AttractionHandler handles HTTP requests for the attraction catalog.
type AttractionHandler struct {
	catalog catalog.Catalog
}

// NewAttractionHandler creates a new AttractionHandler.
func NewAttractionHandler(cat catalog.Catalog) *AttractionHandler {
	return &AttractionHandler{catalog: cat}
}

// AttractionsResponse is the HTTP response for a catalog search.
type AttractionsResponse struct {
	Attractions []domain.Attraction `json:"attractions"`
	Count       int                 `json:"count"`
}

// Search handles GET /v1/attractions?type=&location=&lat=&lng=&radius_km=&limit=
func (h *AttractionHandler) Search(c *gin.Context) {
	q, err := parseQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}

	attractions, err := h.catalog.Search(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, AttractionsResponse{
		Attractions: attractions,
		Count:       len(attractions),
	})
}

// Get handles GET /v1/attractions/:id
func (h *AttractionHandler) Get(c *gin.Context) {
	a, err := h.catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, a)
}

func parseQuery(c *gin.Context) (catalog.Query, error) {
	q := catalog.Query{Location: c.Query("location")}

	if raw := c.Query("type"); raw != "" {
		category, err := domain.ParseCategory(raw)
		if err != nil {
			return q, err
		}
		q.Category = category
	}

	lat, err := optionalFloat(c, "lat")
	if err != nil {
		return q, err
	}
	lng, err := optionalFloat(c, "lng")
	if err != nil {
		return q, err
	}
	if (lat == nil) != (lng == nil) {
		return q, fmt.Errorf("%w: lat and lng must be given together", errInvalidQuery)
	}
	q.Lat, q.Lng = lat, lng

	if radius, err := optionalFloat(c, "radius_km"); err != nil {
		return q, err
	} else if radius != nil {
		q.RadiusKm = *radius
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return q, fmt.Errorf("%w: limit", errInvalidQuery)
		}
		q.Limit = limit
	}

	return q, nil
}

func optionalFloat(c *gin.Context, key string) (*float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errInvalidQuery, key)
	}
	return &v, nil
}
