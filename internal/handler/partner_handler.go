package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"alkhaled/internal/service"
	"alkhaled/pkg/pagination"
	"alkhaled/pkg/response"
)

type PartnerHandler struct {
	partnerService service.PartnerService
}

func NewPartnerHandler(partnerService service.PartnerService) *PartnerHandler {
	return &PartnerHandler{partnerService: partnerService}
}

func (h *PartnerHandler) RegisterRoutes(router *gin.RouterGroup) {
	customers := router.Group("/api/customers")
	{
		customers.GET("", h.ListCustomers)
		customers.POST("", h.CreateCustomer)
		customers.GET("/:id", h.GetCustomer)
		customers.PUT("/:id", h.UpdateCustomer)
		customers.POST("/delete", h.DeleteCustomers)
		customers.POST("/:id/payments", h.PayCustomerDebt)
	}

	suppliers := router.Group("/api/suppliers")
	{
		suppliers.GET("", h.ListSuppliers)
		suppliers.POST("", h.CreateSupplier)
		suppliers.GET("/:id", h.GetSupplier)
		suppliers.PUT("/:id", h.UpdateSupplier)
		suppliers.POST("/delete", h.DeleteSuppliers)
		suppliers.POST("/:id/payments", h.PaySupplierDebt)
	}
}

// ListCustomers returns customers with their derived debt balances
func (h *PartnerHandler) ListCustomers(c *gin.Context) {
	customers := h.partnerService.ListCustomers()
	low, high := pagination.Parse(c).Window(len(customers))
	c.JSON(http.StatusOK, response.Success(http.StatusOK, customers[low:high]))
}

// GetCustomer returns one customer with balance and transaction history
func (h *PartnerHandler) GetCustomer(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	detail, err := h.partnerService.GetCustomer(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, detail))
}

func (h *PartnerHandler) CreateCustomer(c *gin.Context) {
	var req service.PartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	customer, err := h.partnerService.CreateCustomer(req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, customer))
}

func (h *PartnerHandler) UpdateCustomer(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req service.PartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	customer, err := h.partnerService.UpdateCustomer(id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, customer))
}

func (h *PartnerHandler) DeleteCustomers(c *gin.Context) {
	var req IDListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	if err := h.partnerService.DeleteCustomers(req.IDs); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Message(http.StatusOK, "Customers deleted"))
}

// PayCustomerDebt records a debt payment for a customer
// @Summary      Pay customer debt
// @Description  Appends a payment. Overpayment is allowed and yields a negative balance
// @Tags         partners
// @Accept       json
// @Produce      json
// @Param        id       path      int                    true  "Customer ID"
// @Param        payload  body      service.PayDebtRequest true  "Payment payload"
// @Success      201      {object}  response.Response{data=model.Payment}
// @Failure      404      {object}  response.Response
// @Router       /api/customers/{id}/payments [post]
func (h *PartnerHandler) PayCustomerDebt(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req service.PayDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	payment, err := h.partnerService.PayCustomerDebt(id, req.Amount)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, payment))
}

func (h *PartnerHandler) ListSuppliers(c *gin.Context) {
	suppliers := h.partnerService.ListSuppliers()
	low, high := pagination.Parse(c).Window(len(suppliers))
	c.JSON(http.StatusOK, response.Success(http.StatusOK, suppliers[low:high]))
}

func (h *PartnerHandler) GetSupplier(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	detail, err := h.partnerService.GetSupplier(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, detail))
}

func (h *PartnerHandler) CreateSupplier(c *gin.Context) {
	var req service.PartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	supplier, err := h.partnerService.CreateSupplier(req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, supplier))
}

func (h *PartnerHandler) UpdateSupplier(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req service.PartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	supplier, err := h.partnerService.UpdateSupplier(id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, supplier))
}

func (h *PartnerHandler) DeleteSuppliers(c *gin.Context) {
	var req IDListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	if err := h.partnerService.DeleteSuppliers(req.IDs); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Message(http.StatusOK, "Suppliers deleted"))
}

func (h *PartnerHandler) PaySupplierDebt(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req service.PayDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	payment, err := h.partnerService.PaySupplierDebt(id, req.Amount)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, payment))
}
