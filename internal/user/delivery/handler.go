package delivery

import (
	"errors"
	"net/http"

	authdelivery "estate-backend/internal/auth/delivery"
	authdomain "estate-backend/internal/auth/domain"
	propertydomain "estate-backend/internal/property/domain"
	"estate-backend/internal/user/dto"
	"estate-backend/internal/user/usecase"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userUsecase usecase.UserUsecase
}

func NewUserHandler(userUsecase usecase.UserUsecase) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
	}
}

// UpdateProfile changes the caller's own profile fields.
// PUT /api/users/me
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		authdelivery.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.userUsecase.UpdateProfile(c.Request.Context(), c.GetString("userID"), &req)
	if err != nil {
		authdelivery.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// GET /api/users/me/favorites
func (h *UserHandler) GetFavorites(c *gin.Context) {
	favorites, err := h.userUsecase.ListFavorites(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		authdelivery.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "favorites": favorites})
}

// ToggleFavorite adds or removes a property from the caller's favorites.
// POST /api/users/me/favorites/:propertyId
func (h *UserHandler) ToggleFavorite(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.GetString("userID")
	propertyID := c.Param("propertyId")

	favorited, err := h.userUsecase.ToggleFavorite(ctx, userID, propertyID)
	if errors.Is(err, propertydomain.ErrPropertyNotFound) {
		authdelivery.Fail(c, http.StatusNotFound, "Property not found")
		return
	}
	if err != nil {
		authdelivery.RespondError(c, err)
		return
	}

	favorites, err := h.userUsecase.ListFavorites(ctx, userID)
	if err != nil {
		authdelivery.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FavoriteResponse{
		Success:    true,
		PropertyID: propertyID,
		Favorited:  favorited,
		Favorites:  favorites,
	})
}

// ListUsers is admin only.
// GET /api/users?role=agent&limit=50&offset=0
func (h *UserHandler) ListUsers(c *gin.Context) {
	limit, offset := authdelivery.Page(c)

	users, total, err := h.userUsecase.ListUsers(c.Request.Context(), c.Query("role"), limit, offset)
	if err != nil {
		authdelivery.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UsersResponse{
		Success: true,
		Users:   users,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	})
}

// ChangeRole is admin only. Tokens already issued to the target keep the old
// role claim; authorization reads the stored role.
// PATCH /api/users/:id/role
func (h *UserHandler) ChangeRole(c *gin.Context) {
	actor, _ := authdelivery.CurrentUser(c)

	var req dto.ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		authdelivery.Fail(c, http.StatusBadRequest, "Please provide a role")
		return
	}

	user, err := h.userUsecase.ChangeRole(c.Request.Context(), actor, c.Param("id"), req.Role)
	if errors.Is(err, authdomain.ErrUserNotFound) {
		authdelivery.Fail(c, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		authdelivery.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}
