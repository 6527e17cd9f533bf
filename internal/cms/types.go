package cms

import (
	"strings"
	"time"
)

// CouponKind distinguishes code coupons from plain deals.
type CouponKind string

const (
	KindCode CouponKind = "code"
	KindDeal CouponKind = "deal"
)

// ParseCouponKind maps CMS values onto a CouponKind. Anything that is not
// recognizably a code is a deal.
func ParseCouponKind(s string) CouponKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "code", "coupon", "promo", "promocode", "promo_code":
		return KindCode
	default:
		return KindDeal
	}
}

// Merchant is the flat view model of a CMS merchant entry.
type Merchant struct {
	ID          string   `json:"id"`
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Website     string   `json:"website,omitempty"`
	Categories  []string `json:"categories,omitempty"`
	Featured    bool     `json:"featured,omitempty"`
	Rating      float64  `json:"rating,omitempty"`

	// CouponCount is derived from the joined catalog.
	CouponCount int `json:"couponCount"`
}

// Coupon is the flat view model of a CMS coupon entry.
type Coupon struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Kind         CouponKind `json:"kind"`
	Code         string     `json:"code,omitempty"`
	Discount     string     `json:"discount,omitempty"`
	MerchantSlug string     `json:"merchant,omitempty"`
	Verified     bool       `json:"verified,omitempty"`
	Uses         int        `json:"uses,omitempty"`
	ExpiresAt    time.Time  `json:"expiresAt,omitzero"`
}

// Expired reports whether the coupon has an expiry before now.
func (c Coupon) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && c.ExpiresAt.Before(now)
}

// Pagination mirrors the CMS meta.pagination block.
type Pagination struct {
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
}
