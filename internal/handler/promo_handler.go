package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"alkhaled/internal/service"
	"alkhaled/pkg/response"
)

type PromoHandler struct {
	promoService service.PromoService
}

func NewPromoHandler(promoService service.PromoService) *PromoHandler {
	return &PromoHandler{promoService: promoService}
}

func (h *PromoHandler) RegisterRoutes(router *gin.RouterGroup) {
	offers := router.Group("/api/offers")
	{
		offers.GET("", h.ListOffers)
		offers.POST("", h.CreateOffer)
		offers.PUT("/:id", h.UpdateOffer)
		offers.DELETE("/:id", h.DeleteOffer)
	}

	coupons := router.Group("/api/coupons")
	{
		coupons.GET("", h.ListCoupons)
		coupons.POST("", h.CreateCoupon)
		coupons.PUT("/:id", h.UpdateCoupon)
		coupons.DELETE("/:id", h.DeleteCoupon)
		coupons.POST("/validate", h.ValidateCoupon)
	}
}

func (h *PromoHandler) ListOffers(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(http.StatusOK, h.promoService.ListOffers()))
}

func (h *PromoHandler) CreateOffer(c *gin.Context) {
	var req service.OfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	offer, err := h.promoService.SaveOffer(0, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, offer))
}

func (h *PromoHandler) UpdateOffer(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req service.OfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	offer, err := h.promoService.SaveOffer(id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, offer))
}

func (h *PromoHandler) DeleteOffer(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.promoService.DeleteOffer(id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Message(http.StatusOK, "Offer deleted"))
}

func (h *PromoHandler) ListCoupons(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(http.StatusOK, h.promoService.ListCoupons()))
}

func (h *PromoHandler) CreateCoupon(c *gin.Context) {
	var req service.CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	coupon, err := h.promoService.SaveCoupon(0, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, coupon))
}

func (h *PromoHandler) UpdateCoupon(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req service.CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	coupon, err := h.promoService.SaveCoupon(id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, coupon))
}

func (h *PromoHandler) DeleteCoupon(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.promoService.DeleteCoupon(id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Message(http.StatusOK, "Coupon deleted"))
}

// ValidateCoupon checks a code against the redemption rules
// @Summary      Validate coupon
// @Description  Resolves a coupon code case-insensitively and checks activity, expiry and minimum purchase against the cart subtotal
// @Tags         promotions
// @Accept       json
// @Produce      json
// @Param        payload  body      service.ValidateCouponRequest  true  "Validation payload"
// @Success      200      {object}  response.Response{data=model.Coupon}
// @Failure      400      {object}  response.Response
// @Router       /api/coupons/validate [post]
func (h *PromoHandler) ValidateCoupon(c *gin.Context) {
	var req service.ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	coupon, err := h.promoService.ValidateCoupon(req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, coupon))
}
