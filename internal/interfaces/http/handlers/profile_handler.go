package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"anonimax.backend/internal/domain/entities"
	domainerrors "anonimax.backend/internal/domain/errors"
	"anonimax.backend/internal/interfaces/http/middleware"
	"anonimax.backend/internal/interfaces/http/response"
	"anonimax.backend/internal/usecases"
	"anonimax.backend/pkg/utils"
)

// ProfileHandler handles profile, directory and favorite endpoints
type ProfileHandler struct {
	profileUsecase *usecases.ProfileUsecase
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileUsecase *usecases.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{
		profileUsecase: profileUsecase,
	}
}

// GetMine returns the caller's own profile
// GET /api/v1/profiles/me
func (h *ProfileHandler) GetMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Não autorizado"))
		return
	}

	profile, err := h.profileUsecase.GetMine(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"profile": profile})
}

// UpdateMine applies a partial update to the caller's profile
// PUT /api/v1/profiles/me
func (h *ProfileHandler) UpdateMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Não autorizado"))
		return
	}

	var input entities.UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	profile, err := h.profileUsecase.UpdateMine(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Perfil atualizado com sucesso",
		"profile": profile,
	})
}

// List returns the public directory of contactable profiles
// GET /api/v1/profiles
func (h *ProfileHandler) List(c *gin.Context) {
	var query struct {
		utils.PaginationParams
		State  string `form:"state"`
		Search string `form:"search"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}
	pagination := utils.GetPaginationParams(query.Skip, query.Limit)

	profiles, err := h.profileUsecase.ListDirectory(c.Request.Context(), entities.ProfileFilters{
		State:  query.State,
		Search: query.Search,
		Skip:   pagination.Skip,
		Limit:  pagination.Limit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"profiles": profiles})
}

// AddFavorite bookmarks another profile
// POST /api/v1/favorites
func (h *ProfileHandler) AddFavorite(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Não autorizado"))
		return
	}

	var input entities.CreateFavoriteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	favorite, err := h.profileUsecase.AddFavorite(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message":  "Adicionado aos favoritos",
		"favorite": favorite,
	})
}

// ListFavorites returns the caller's favorites
// GET /api/v1/favorites
func (h *ProfileHandler) ListFavorites(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Não autorizado"))
		return
	}

	favorites, err := h.profileUsecase.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"favorites": favorites})
}

// RemoveFavorite deletes a favorite the caller owns
// DELETE /api/v1/favorites/:id
func (h *ProfileHandler) RemoveFavorite(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Não autorizado"))
		return
	}

	favoriteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("ID inválido"))
		return
	}

	if err := h.profileUsecase.RemoveFavorite(c.Request.Context(), userID, favoriteID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Removido dos favoritos"})
}
