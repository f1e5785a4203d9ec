package handlers

import (
	"errors"
	"net/http"

	catalogRepo "voyago/database/repository/catalog"
	"voyago/models"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the bookable subjects: destinations, events and
// accommodations. Reads are public; writes sit behind the admin routes.
type CatalogHandler struct {
	Repo catalogRepo.CatalogRepository
}

// NewCatalogHandler creates a new CatalogHandler instance.
func NewCatalogHandler(repo catalogRepo.CatalogRepository) *CatalogHandler {
	return &CatalogHandler{Repo: repo}
}

func respondCatalogError(c *gin.Context, err error) {
	if errors.Is(err, catalogRepo.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// --- Destinations ---

func (h *CatalogHandler) ListDestinationsHandler(c *gin.Context) {
	out, err := h.Repo.ListDestinations(c.Request.Context())
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"destinations": out})
}

func (h *CatalogHandler) GetDestinationHandler(c *gin.Context) {
	d, err := h.Repo.GetDestination(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"destination": d})
}

func (h *CatalogHandler) CreateDestinationHandler(c *gin.Context) {
	var d models.Destination
	if err := c.ShouldBindJSON(&d); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if err := h.Repo.CreateDestination(c.Request.Context(), &d); err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"destination": d})
}

func (h *CatalogHandler) UpdateDestinationHandler(c *gin.Context) {
	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if err := h.Repo.UpdateDestination(c.Request.Context(), c.Param("id"), patch); err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "destination updated"})
}

func (h *CatalogHandler) DeleteDestinationHandler(c *gin.Context) {
	if err := h.Repo.DeleteDestination(c.Request.Context(), c.Param("id")); err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "destination deleted"})
}

// --- Events ---

func (h *CatalogHandler) ListEventsHandler(c *gin.Context) {
	out, err := h.Repo.ListEvents(c.Request.Context())
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": out})
}

func (h *CatalogHandler) GetEventHandler(c *gin.Context) {
	e, err := h.Repo.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"event": e})
}

func (h *CatalogHandler) CreateEventHandler(c *gin.Context) {
	var e models.Event
	if err := c.ShouldBindJSON(&e); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if err := h.Repo.CreateEvent(c.Request.Context(), &e); err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"event": e})
}

func (h *CatalogHandler) UpdateEventHandler(c *gin.Context) {
	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if err := h.Repo.UpdateEvent(c.Request.Context(), c.Param("id"), patch); err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "event updated"})
}

func (h *CatalogHandler) DeleteEventHandler(c *gin.Context) {
	if err := h.Repo.DeleteEvent(c.Request.Context(), c.Param("id")); err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "event deleted"})
}

// --- Accommodations ---

func (h *CatalogHandler) ListAccommodationsHandler(c *gin.Context) {
	out, err := h.Repo.ListAccommodations(c.Request.Context())
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"accommodations": out})
}

func (h *CatalogHandler) GetAccommodationHandler(c *gin.Context) {
	a, err := h.Repo.GetAccommodation(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"accommodation": a})
}

func (h *CatalogHandler) CreateAccommodationHandler(c *gin.Context) {
	var a models.Accommodation
	if err := c.ShouldBindJSON(&a); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if err := h.Repo.CreateAccommodation(c.Request.Context(), &a); err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"accommodation": a})
}

func (h *CatalogHandler) UpdateAccommodationHandler(c *gin.Context) {
	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if err := h.Repo.UpdateAccommodation(c.Request.Context(), c.Param("id"), patch); err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "accommodation updated"})
}

func (h *CatalogHandler) DeleteAccommodationHandler(c *gin.Context) {
	if err := h.Repo.DeleteAccommodation(c.Request.Context(), c.Param("id")); err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "accommodation deleted"})
}
