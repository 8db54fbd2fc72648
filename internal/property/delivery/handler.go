package delivery

import (
	"errors"
	"net/http"

	authdelivery "estate-backend/internal/auth/delivery"
	"estate-backend/internal/property/domain"
	"estate-backend/internal/property/dto"
	"estate-backend/internal/property/usecase"

	"github.com/gin-gonic/gin"
)

// PropertyHandler handles listing HTTP requests. All routes run behind
// AuthMiddleware.
type PropertyHandler struct {
	propertyUsecase usecase.PropertyUsecase
}

func NewPropertyHandler(propertyUsecase usecase.PropertyUsecase) *PropertyHandler {
	return &PropertyHandler{
		propertyUsecase: propertyUsecase,
	}
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrPropertyNotFound):
		authdelivery.Fail(c, http.StatusNotFound, "Property not found")
	case errors.Is(err, domain.ErrInvalidStatus), errors.Is(err, domain.ErrInvalidAgent):
		authdelivery.Fail(c, http.StatusBadRequest, err.Error())
	default:
		authdelivery.RespondError(c, err)
	}
}

// CreateProperty publishes a listing owned by the caller.
// POST /api/properties
func (h *PropertyHandler) CreateProperty(c *gin.Context) {
	user, _ := authdelivery.CurrentUser(c)

	var req dto.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		authdelivery.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	property, err := h.propertyUsecase.Create(c.Request.Context(), user, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "property": property})
}

// GET /api/properties/:id
func (h *PropertyHandler) GetProperty(c *gin.Context) {
	property, err := h.propertyUsecase.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "property": property})
}

// GetMyProperties lists listings the caller owns or manages as agent.
// GET /api/properties/mine?limit=50&offset=0
func (h *PropertyHandler) GetMyProperties(c *gin.Context) {
	user, _ := authdelivery.CurrentUser(c)

	limit, offset := authdelivery.Page(c)

	properties, total, err := h.propertyUsecase.ListMine(c.Request.Context(), user, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	if properties == nil {
		properties = []*domain.Property{}
	}

	c.JSON(http.StatusOK, dto.PropertiesResponse{
		Success:    true,
		Properties: properties,
		Total:      total,
		Limit:      limit,
		Offset:     offset,
	})
}

// PUT /api/properties/:id
func (h *PropertyHandler) UpdateProperty(c *gin.Context) {
	user, _ := authdelivery.CurrentUser(c)

	var req dto.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		authdelivery.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	property, err := h.propertyUsecase.Update(c.Request.Context(), user, c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "property": property})
}

// DELETE /api/properties/:id
func (h *PropertyHandler) DeleteProperty(c *gin.Context) {
	user, _ := authdelivery.CurrentUser(c)

	if err := h.propertyUsecase.Delete(c.Request.Context(), user, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Property deleted successfully"})
}

// PATCH /api/properties/:id/agent
func (h *PropertyHandler) AssignAgent(c *gin.Context) {
	user, _ := authdelivery.CurrentUser(c)

	var req dto.AssignAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		authdelivery.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	property, err := h.propertyUsecase.AssignAgent(c.Request.Context(), user, c.Param("id"), req.AgentID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "property": property})
}
