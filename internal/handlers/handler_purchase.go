package handlers

import (
	"net/http"

	portssvc "github.com/dairyworks/farm_ledger/internal/core/ports/services"
	"github.com/dairyworks/farm_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

type purchaseHandler struct {
	purchaseService portssvc.PurchaseSvcFacade
}

// RegisterPurchaseRoutes registers routes related to purchases.
func RegisterPurchaseRoutes(rg *gin.RouterGroup, purchaseService portssvc.PurchaseSvcFacade) {
	h := &purchaseHandler{purchaseService: purchaseService}

	purchases := rg.Group("/purchases")
	{
		purchases.POST("", h.createPurchase)
		purchases.GET("/date/:date", h.listPurchasesByDate)
		purchases.GET("/:id", h.getPurchase)
	}
}

// createPurchase godoc
// @Summary Create a purchase
// @Tags purchases
// @Accept  json
// @Produce  json
// @Param   purchase body dto.CreatePurchaseRequest true "Purchase"
// @Success 201 {object} dto.SuccessResponse{data=dto.PurchaseResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /purchases [post]
func (h *purchaseHandler) createPurchase(c *gin.Context) {
	var req dto.CreatePurchaseRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	purchase, err := h.purchaseService.CreatePurchase(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create purchase")
		return
	}
	respondOK(c, http.StatusCreated, dto.ToPurchaseResponse(purchase))
}

// getPurchase godoc
// @Summary Get a purchase
// @Tags purchases
// @Produce  json
// @Param   id path string true "Purchase ID"
// @Success 200 {object} dto.SuccessResponse{data=dto.PurchaseResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /purchases/{id} [get]
func (h *purchaseHandler) getPurchase(c *gin.Context) {
	purchase, err := h.purchaseService.GetPurchase(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve purchase")
		return
	}
	respondOK(c, http.StatusOK, dto.ToPurchaseResponse(purchase))
}

// listPurchasesByDate godoc
// @Summary Purchases on a day
// @Tags purchases
// @Produce  json
// @Param   date path string true "YYYY-MM-DD"
// @Success 200 {object} dto.SuccessResponse{data=[]dto.PurchaseResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /purchases/date/{date} [get]
func (h *purchaseHandler) listPurchasesByDate(c *gin.Context) {
	purchases, err := h.purchaseService.ListPurchasesByDate(c.Request.Context(), c.Param("date"))
	if err != nil {
		respondError(c, err, "Failed to list purchases")
		return
	}
	respondOK(c, http.StatusOK, dto.ToListPurchaseResponse(purchases))
}
