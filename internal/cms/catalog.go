package cms

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/daptify14/dealit/internal/search"
)

// Catalog is a loaded, joined set of merchants and coupons.
type Catalog struct {
	Merchants []Merchant
	Coupons   []Coupon
	LoadedAt  time.Time

	bySlug    map[string]int
	byCoupons map[string][]int
}

// NewCatalog joins coupons to merchants by slug. Merchants are ordered by
// name; coupons keep their source order.
func NewCatalog(merchants []Merchant, coupons []Coupon, loadedAt time.Time) *Catalog {
	c := &Catalog{
		Merchants: slices.Clone(merchants),
		Coupons:   slices.Clone(coupons),
		LoadedAt:  loadedAt,
	}
	slices.SortStableFunc(c.Merchants, func(a, b Merchant) int {
		return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})

	c.bySlug = make(map[string]int, len(c.Merchants))
	for i, m := range c.Merchants {
		if m.Slug != "" {
			c.bySlug[m.Slug] = i
		}
	}
	c.byCoupons = make(map[string][]int, len(c.Merchants))
	for i, cp := range c.Coupons {
		if cp.MerchantSlug == "" {
			continue
		}
		c.byCoupons[cp.MerchantSlug] = append(c.byCoupons[cp.MerchantSlug], i)
	}
	for i := range c.Merchants {
		c.Merchants[i].CouponCount = len(c.byCoupons[c.Merchants[i].Slug])
	}
	return c
}

// Empty reports whether the catalog holds nothing.
func (c *Catalog) Empty() bool {
	return c == nil || (len(c.Merchants) == 0 && len(c.Coupons) == 0)
}

// Merchant looks a merchant up by slug.
func (c *Catalog) Merchant(slug string) (Merchant, bool) {
	if c == nil {
		return Merchant{}, false
	}
	i, ok := c.bySlug[slug]
	if !ok {
		return Merchant{}, false
	}
	return c.Merchants[i], true
}

// CouponsFor returns the coupons of one merchant in source order.
func (c *Catalog) CouponsFor(slug string) []Coupon {
	if c == nil {
		return nil
	}
	idx := c.byCoupons[slug]
	out := make([]Coupon, 0, len(idx))
	for _, i := range idx {
		out = append(out, c.Coupons[i])
	}
	return out
}

// MerchantName returns the display name for slug, or the slug itself.
func (c *Catalog) MerchantName(slug string) string {
	if m, ok := c.Merchant(slug); ok && m.Name != "" {
		return m.Name
	}
	return slug
}

// SearchRecords converts merchants into search index records. Categories
// and the website form the secondary text.
func (c *Catalog) SearchRecords() []search.Record {
	if c == nil {
		return nil
	}
	out := make([]search.Record, 0, len(c.Merchants))
	for _, m := range c.Merchants {
		secondary := strings.Join(m.Categories, " ")
		if m.Website != "" {
			secondary = strings.TrimSpace(secondary + " " + m.Website)
		}
		out = append(out, search.Record{
			ID:            m.ID,
			Name:          m.Name,
			Slug:          m.Slug,
			SecondaryText: secondary,
		})
	}
	return out
}
