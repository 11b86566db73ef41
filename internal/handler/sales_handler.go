package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"alkhaled/internal/service"
	"alkhaled/pkg/pagination"
	"alkhaled/pkg/response"
)

type SalesHandler struct {
	salesService service.SalesService
}

func NewSalesHandler(salesService service.SalesService) *SalesHandler {
	return &SalesHandler{salesService: salesService}
}

func (h *SalesHandler) RegisterRoutes(router *gin.RouterGroup) {
	sales := router.Group("/api/sales")
	{
		sales.POST("", h.CompleteSale)
	}

	invoices := router.Group("/api/invoices")
	{
		invoices.GET("", h.ListInvoices)
		invoices.GET("/:id", h.GetInvoice)
		invoices.POST("/:id/returns", h.ProcessReturn)
	}

	offers := router.Group("/api/offers")
	{
		offers.GET("/:id/lines", h.ExpandOffer)
	}
}

// CompleteSale prices the cart and creates a sales invoice
// @Summary      Complete sale
// @Description  Prices the cart (coupon, then manual discount, then tax), creates the invoice and decrements stock
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CompleteSaleRequest  true  "Sale payload"
// @Success      201      {object}  response.Response{data=model.Invoice}
// @Failure      400      {object}  response.Response
// @Router       /api/sales [post]
func (h *SalesHandler) CompleteSale(c *gin.Context) {
	var req service.CompleteSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	invoice, err := h.salesService.CompleteSale(req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, invoice))
}

// ListInvoices returns sales invoices
// @Summary      List invoices
// @Tags         sales
// @Produce      json
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  response.Response{data=[]model.Invoice}
// @Router       /api/invoices [get]
func (h *SalesHandler) ListInvoices(c *gin.Context) {
	invoices := h.salesService.GetInvoices()
	low, high := pagination.Parse(c).Window(len(invoices))
	c.JSON(http.StatusOK, response.Success(http.StatusOK, invoices[low:high]))
}

// GetInvoice returns one sales invoice by id
// @Summary      Get invoice
// @Tags         sales
// @Produce      json
// @Param        id   path      int  true  "Invoice ID"
// @Success      200  {object}  response.Response{data=model.Invoice}
// @Failure      404  {object}  response.Response
// @Router       /api/invoices/{id} [get]
func (h *SalesHandler) GetInvoice(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	invoice, err := h.salesService.GetInvoice(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, invoice))
}

// ProcessReturn applies a clamped return against an invoice
// @Summary      Return invoice items
// @Description  Returns items on an invoice. Quantities are clamped to what was sold minus what was already returned
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        id       path      int                           true  "Invoice ID"
// @Param        payload  body      service.ProcessReturnRequest  true  "Return payload"
// @Success      200      {object}  response.Response{data=model.Invoice}
// @Failure      404      {object}  response.Response
// @Router       /api/invoices/{id}/returns [post]
func (h *SalesHandler) ProcessReturn(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req service.ProcessReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	invoice, err := h.salesService.ProcessReturn(id, req.Items)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, invoice))
}

// ExpandOffer prices a bundle offer into cart lines
// @Summary      Expand offer
// @Description  Prices the bundle into per-product cart lines using the bundle to list price ratio
// @Tags         sales
// @Produce      json
// @Param        id   path      int  true  "Offer ID"
// @Success      200  {object}  response.Response{data=[]model.CartItem}
// @Failure      409  {object}  response.Response
// @Router       /api/offers/{id}/lines [get]
func (h *SalesHandler) ExpandOffer(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	lines, err := h.salesService.ExpandOffer(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, lines))
}
