package handlers

import (
	"net/http"

	portssvc "github.com/dairyworks/farm_ledger/internal/core/ports/services"
	"github.com/dairyworks/farm_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

type saleHandler struct {
	saleService portssvc.SaleSvcFacade
}

// RegisterSaleRoutes registers routes related to sales.
func RegisterSaleRoutes(rg *gin.RouterGroup, saleService portssvc.SaleSvcFacade) {
	h := &saleHandler{saleService: saleService}

	sales := rg.Group("/sales")
	{
		sales.POST("", h.createSale)
		sales.POST("/create-multiple", h.createMultipleSales)
		sales.GET("/by-date/:date", h.listSalesByDate)
		sales.GET("/:id", h.getSale)
		sales.PUT("/:id", h.updateSalePayment)
		sales.POST("/:id", h.updateSale)
		sales.DELETE("/:id", h.deleteSale)
	}
}

// createSale godoc
// @Summary Create a sale
// @Description Posts the invoice, any receipt and the stock decrement as one unit.
// @Tags sales
// @Accept  json
// @Produce  json
// @Param   sale body dto.CreateSaleRequest true "Sale"
// @Success 201 {object} dto.SuccessResponse{data=dto.SaleResponse}
// @Failure 400 {object} dto.ErrorResponse "Validation error or insufficient stock"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /sales [post]
func (h *saleHandler) createSale(c *gin.Context) {
	var req dto.CreateSaleRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create sale")
		return
	}
	respondOK(c, http.StatusCreated, dto.ToSaleResponse(sale))
}

// createMultipleSales godoc
// @Summary Create several unpaid sales
// @Description All sales are posted or none are.
// @Tags sales
// @Accept  json
// @Produce  json
// @Param   sales body dto.CreateMultipleSalesRequest true "Sales"
// @Success 201 {object} dto.SuccessResponse{data=[]dto.SaleResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /sales/create-multiple [post]
func (h *saleHandler) createMultipleSales(c *gin.Context) {
	var req dto.CreateMultipleSalesRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	sales, err := h.saleService.CreateMultipleSales(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create sales")
		return
	}
	respondOK(c, http.StatusCreated, dto.ToListSaleResponse(sales))
}

// listSalesByDate godoc
// @Summary Sales on a day
// @Tags sales
// @Produce  json
// @Param   date path string true "YYYY-MM-DD"
// @Success 200 {object} dto.SuccessResponse{data=[]dto.SaleResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /sales/by-date/{date} [get]
func (h *saleHandler) listSalesByDate(c *gin.Context) {
	sales, err := h.saleService.ListSalesByDate(c.Request.Context(), c.Param("date"))
	if err != nil {
		respondError(c, err, "Failed to list sales")
		return
	}
	respondOK(c, http.StatusOK, dto.ToListSaleResponse(sales))
}

// getSale godoc
// @Summary Get a sale
// @Tags sales
// @Produce  json
// @Param   id path string true "Sale ID"
// @Success 200 {object} dto.SuccessResponse{data=dto.SaleResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /sales/{id} [get]
func (h *saleHandler) getSale(c *gin.Context) {
	sale, err := h.saleService.GetSale(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve sale")
		return
	}
	respondOK(c, http.StatusOK, dto.ToSaleResponse(sale))
}

// updateSalePayment godoc
// @Summary Record a payment against a sale
// @Tags sales
// @Accept  json
// @Produce  json
// @Param   id path string true "Sale ID"
// @Param   payment body dto.UpdateSalePaymentRequest true "Payment"
// @Success 200 {object} dto.SuccessResponse{data=dto.SaleResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /sales/{id} [put]
func (h *saleHandler) updateSalePayment(c *gin.Context) {
	var req dto.UpdateSalePaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	sale, err := h.saleService.UpdateSalePayment(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to record sale payment")
		return
	}
	respondOK(c, http.StatusOK, dto.ToSaleResponse(sale))
}

// updateSale godoc
// @Summary Replace a sale
// @Description Reverses the stored postings and applies the new document in one unit.
// @Tags sales
// @Accept  json
// @Produce  json
// @Param   id path string true "Sale ID"
// @Param   sale body dto.UpdateSaleRequest true "Sale"
// @Success 200 {object} dto.SuccessResponse{data=dto.SaleResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /sales/{id} [post]
func (h *saleHandler) updateSale(c *gin.Context) {
	var req dto.UpdateSaleRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	sale, err := h.saleService.UpdateSale(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update sale")
		return
	}
	respondOK(c, http.StatusOK, dto.ToSaleResponse(sale))
}

// deleteSale godoc
// @Summary Delete a sale
// @Description Reverses balances and stock before removing the sale.
// @Tags sales
// @Produce  json
// @Param   id path string true "Sale ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /sales/{id} [delete]
func (h *saleHandler) deleteSale(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.saleService.DeleteSale(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err, "Failed to delete sale")
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true, Message: "Sale deleted"})
}
