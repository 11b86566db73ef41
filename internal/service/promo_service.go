package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"alkhaled/internal/ledger"
	"alkhaled/internal/model"
	"alkhaled/internal/store"
	ws "alkhaled/internal/websocket"
)

// --- DTOs ---

type OfferRequest struct {
	Name        string            `json:"name" binding:"required"`
	Description string            `json:"description"`
	Barcode     string            `json:"barcode"`
	Items       []model.OfferItem `json:"items" binding:"required,min=1,dive"`
	Price       decimal.Decimal   `json:"price"`
	IsActive    bool              `json:"isActive"`
}

type CouponRequest struct {
	Code              string          `json:"code" binding:"required"`
	Type              string          `json:"type" binding:"required,oneof=fixed_amount percentage"`
	Value             decimal.Decimal `json:"value" binding:"required"`
	IsActive          bool            `json:"isActive"`
	MinPurchaseAmount decimal.Decimal `json:"minPurchaseAmount"`
	ExpiryDate        string          `json:"expiryDate"`
}

type ValidateCouponRequest struct {
	Code     string          `json:"code" binding:"required"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// --- Interface ---

type PromoService interface {
	ListOffers() []model.Offer
	SaveOffer(id int64, req OfferRequest) (model.Offer, error)
	DeleteOffer(id int64) error

	ListCoupons() []model.Coupon
	SaveCoupon(id int64, req CouponRequest) (model.Coupon, error)
	DeleteCoupon(id int64) error
	ValidateCoupon(req ValidateCouponRequest) (model.Coupon, error)
}

type promoService struct {
	ctrl *store.Controller
	hub  *ws.Hub
}

func NewPromoService(ctrl *store.Controller, hub *ws.Hub) PromoService {
	return &promoService{ctrl: ctrl, hub: hub}
}

// --- Offers ---

func (s *promoService) ListOffers() []model.Offer {
	var out []model.Offer
	s.ctrl.View(func(doc *model.Document) {
		out = make([]model.Offer, len(doc.Offers))
		copy(out, doc.Offers)
	})
	return out
}

// SaveOffer creates when id is zero, updates otherwise.
func (s *promoService) SaveOffer(id int64, req OfferRequest) (model.Offer, error) {
	var offer model.Offer
	err := s.ctrl.Update(func(doc *model.Document) error {
		offer = model.Offer{
			ID:          id,
			Name:        req.Name,
			Description: req.Description,
			Barcode:     req.Barcode,
			Items:       req.Items,
			Price:       req.Price,
			IsActive:    req.IsActive,
		}
		if id == 0 {
			offer.ID = model.NewID()
			doc.Offers = append([]model.Offer{offer}, doc.Offers...)
		} else {
			updated := false
			for i := range doc.Offers {
				if doc.Offers[i].ID == id {
					doc.Offers[i] = offer
					updated = true
					break
				}
			}
			if !updated {
				return fmt.Errorf("offer %d: %w", id, ErrNotFound)
			}
		}
		pushToast(doc, s.hub, "تم حفظ العرض بنجاح", model.ToastSuccess)
		return nil
	})
	return offer, err
}

func (s *promoService) DeleteOffer(id int64) error {
	return s.ctrl.Update(func(doc *model.Document) error {
		kept := doc.Offers[:0]
		for _, o := range doc.Offers {
			if o.ID != id {
				kept = append(kept, o)
			}
		}
		doc.Offers = kept
		pushToast(doc, s.hub, "تم حذف العرض بنجاح", model.ToastSuccess)
		return nil
	})
}

// --- Coupons ---

func (s *promoService) ListCoupons() []model.Coupon {
	var out []model.Coupon
	s.ctrl.View(func(doc *model.Document) {
		out = make([]model.Coupon, len(doc.Coupons))
		copy(out, doc.Coupons)
	})
	return out
}

// SaveCoupon creates when id is zero, updates otherwise. Codes are stored
// upper-cased.
func (s *promoService) SaveCoupon(id int64, req CouponRequest) (model.Coupon, error) {
	var coupon model.Coupon
	err := s.ctrl.Update(func(doc *model.Document) error {
		coupon = model.Coupon{
			ID:                id,
			Code:              strings.ToUpper(strings.TrimSpace(req.Code)),
			Type:              req.Type,
			Value:             req.Value,
			IsActive:          req.IsActive,
			MinPurchaseAmount: req.MinPurchaseAmount,
			ExpiryDate:        req.ExpiryDate,
		}
		if id == 0 {
			coupon.ID = model.NewID()
			doc.Coupons = append([]model.Coupon{coupon}, doc.Coupons...)
		} else {
			updated := false
			for i := range doc.Coupons {
				if doc.Coupons[i].ID == id {
					doc.Coupons[i] = coupon
					updated = true
					break
				}
			}
			if !updated {
				return fmt.Errorf("coupon %d: %w", id, ErrNotFound)
			}
		}
		pushToast(doc, s.hub, "تم حفظ الكوبون بنجاح", model.ToastSuccess)
		return nil
	})
	return coupon, err
}

func (s *promoService) DeleteCoupon(id int64) error {
	return s.ctrl.Update(func(doc *model.Document) error {
		kept := doc.Coupons[:0]
		for _, c := range doc.Coupons {
			if c.ID != id {
				kept = append(kept, c)
			}
		}
		doc.Coupons = kept
		pushToast(doc, s.hub, "تم حذف الكوبون بنجاح", model.ToastSuccess)
		return nil
	})
}

// ValidateCoupon resolves a code against the redemption rules for the
// given cart subtotal. Read-only; used by the POS before checkout.
func (s *promoService) ValidateCoupon(req ValidateCouponRequest) (model.Coupon, error) {
	var coupon model.Coupon
	var vErr error
	s.ctrl.View(func(doc *model.Document) {
		coupon, vErr = ledger.FindCoupon(doc.Coupons, req.Code)
		if vErr != nil {
			return
		}
		vErr = ledger.ValidateCoupon(coupon, req.Subtotal, time.Now())
	})
	if vErr != nil {
		return model.Coupon{}, vErr
	}
	return coupon, nil
}
