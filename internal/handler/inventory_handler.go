package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"alkhaled/internal/service"
	"alkhaled/pkg/pagination"
	"alkhaled/pkg/response"
)

type InventoryHandler struct {
	inventoryService service.InventoryService
}

func NewInventoryHandler(inventoryService service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

func (h *InventoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	products := router.Group("/api/products")
	{
		products.GET("", h.ListProducts)
		products.POST("", h.CreateProduct)
		products.GET("/:id", h.GetProduct)
		products.PUT("/:id", h.UpdateProduct)
		products.POST("/delete", h.DeleteProducts)
	}

	purchases := router.Group("/api/purchase-invoices")
	{
		purchases.GET("", h.ListPurchaseInvoices)
		purchases.POST("", h.RecordPurchaseInvoice)
	}
}

// ListProducts returns products, optionally filtered by name or barcode
// @Summary      List products
// @Description  Returns products filtered by a name substring or an exact barcode match
// @Tags         products
// @Produce      json
// @Param        search  query     string  false  "Name substring or barcode"
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Page size"
// @Success      200     {object}  response.Response{data=[]model.Product}
// @Router       /api/products [get]
func (h *InventoryHandler) ListProducts(c *gin.Context) {
	products := h.inventoryService.ListProducts(c.Query("search"))
	low, high := pagination.Parse(c).Window(len(products))
	c.JSON(http.StatusOK, response.Success(http.StatusOK, products[low:high]))
}

// GetProduct returns one product by id
// @Summary      Get product
// @Tags         products
// @Produce      json
// @Param        id   path      int  true  "Product ID"
// @Success      200  {object}  response.Response{data=model.Product}
// @Failure      404  {object}  response.Response
// @Router       /api/products/{id} [get]
func (h *InventoryHandler) GetProduct(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	product, err := h.inventoryService.GetProduct(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, product))
}

// CreateProduct registers a new product
// @Summary      Create product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        payload  body      service.ProductRequest  true  "Product payload"
// @Success      201      {object}  response.Response{data=model.Product}
// @Failure      400      {object}  response.Response
// @Router       /api/products [post]
func (h *InventoryHandler) CreateProduct(c *gin.Context) {
	var req service.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	product, err := h.inventoryService.CreateProduct(req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, product))
}

// UpdateProduct replaces a product's editable fields
// @Summary      Update product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id       path      int                     true  "Product ID"
// @Param        payload  body      service.ProductRequest  true  "Product payload"
// @Success      200      {object}  response.Response{data=model.Product}
// @Failure      404      {object}  response.Response
// @Router       /api/products/{id} [put]
func (h *InventoryHandler) UpdateProduct(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req service.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	product, err := h.inventoryService.UpdateProduct(id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, product))
}

// DeleteProducts removes one or more products by id
// @Summary      Delete products
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        payload  body      handler.IDListRequest  true  "Product IDs"
// @Success      200      {object}  response.Response
// @Router       /api/products/delete [post]
func (h *InventoryHandler) DeleteProducts(c *gin.Context) {
	var req IDListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	if err := h.inventoryService.DeleteProducts(req.IDs); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Message(http.StatusOK, "Products deleted"))
}

// ListPurchaseInvoices returns purchase invoices, optionally for one supplier
// @Summary      List purchase invoices
// @Tags         purchases
// @Produce      json
// @Param        supplierId  query     int  false  "Filter by supplier"
// @Success      200         {object}  response.Response{data=[]model.PurchaseInvoice}
// @Router       /api/purchase-invoices [get]
func (h *InventoryHandler) ListPurchaseInvoices(c *gin.Context) {
	supplierID, _ := strconv.ParseInt(c.Query("supplierId"), 10, 64)
	invoices := h.inventoryService.ListPurchaseInvoices(supplierID)
	low, high := pagination.Parse(c).Window(len(invoices))
	c.JSON(http.StatusOK, response.Success(http.StatusOK, invoices[low:high]))
}

// RecordPurchaseInvoice stores a purchase and restocks matched products
// @Summary      Record purchase invoice
// @Description  Stores the purchase, restocks lines linked to a product and echoes back lines that matched no product
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Param        payload  body      service.RecordPurchaseRequest  true  "Purchase payload"
// @Success      201      {object}  response.Response{data=service.PurchaseResult}
// @Failure      404      {object}  response.Response
// @Router       /api/purchase-invoices [post]
func (h *InventoryHandler) RecordPurchaseInvoice(c *gin.Context) {
	var req service.RecordPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	result, err := h.inventoryService.RecordPurchaseInvoice(req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, result))
}
