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

// ListingHandler handles listing endpoints
type ListingHandler struct {
	listingUsecase *usecases.ListingUsecase
}

// NewListingHandler creates a new listing handler
func NewListingHandler(listingUsecase *usecases.ListingUsecase) *ListingHandler {
	return &ListingHandler{
		listingUsecase: listingUsecase,
	}
}

// Create submits a new listing for moderation
// POST /api/v1/listings
func (h *ListingHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Não autorizado"))
		return
	}

	var input entities.CreateListingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	result, err := h.listingUsecase.Create(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// SubmitPayment records the fee transaction hash for a pending listing
// POST /api/v1/listings/payment
func (h *ListingHandler) SubmitPayment(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Não autorizado"))
		return
	}

	var input entities.SubmitPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	payment, err := h.listingUsecase.SubmitPayment(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Hash registrado. Aguarde a verificação do pagamento.",
		"payment": payment,
	})
}

// List returns active listings, optionally filtered
// GET /api/v1/listings
func (h *ListingHandler) List(c *gin.Context) {
	var query struct {
		utils.PaginationParams
		State    string `form:"state"`
		Category string `form:"category"`
		Search   string `form:"search"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}
	pagination := utils.GetPaginationParams(query.Skip, query.Limit)

	listings, err := h.listingUsecase.ListActive(c.Request.Context(), entities.ListingFilters{
		State:    query.State,
		Category: query.Category,
		Search:   query.Search,
		Skip:     pagination.Skip,
		Limit:    pagination.Limit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"listings": listings})
}

// Mine returns all of the caller's own listings, whatever their status
// GET /api/v1/listings/mine
func (h *ListingHandler) Mine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Não autorizado"))
		return
	}

	listings, err := h.listingUsecase.MyListings(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"listings": listings})
}

// Get returns one listing with its owner's public profile
// GET /api/v1/listings/:id
func (h *ListingHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("ID inválido"))
		return
	}

	detail, err := h.listingUsecase.GetDetail(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, detail)
}
