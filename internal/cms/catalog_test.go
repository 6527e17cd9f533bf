package cms

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/daptify14/dealit/internal/search"
)

func sampleCatalog() *Catalog {
	merchants := []Merchant{
		{ID: "2", Slug: "zen", Name: "Zen Tea", Categories: []string{"Food"}},
		{ID: "1", Slug: "acme", Name: "acme outdoors", Website: "acme.example", Categories: []string{"Outdoor", "Sports"}},
	}
	coupons := []Coupon{
		{ID: "a", Title: "10% off", MerchantSlug: "acme"},
		{ID: "b", Title: "Tea bundle", MerchantSlug: "zen"},
		{ID: "c", Title: "Free shipping", MerchantSlug: "acme"},
		{ID: "d", Title: "Orphan"},
	}
	return NewCatalog(merchants, coupons, time.Unix(0, 0))
}

func TestNewCatalogSortsAndJoins(t *testing.T) {
	c := sampleCatalog()
	if c.Merchants[0].Slug != "acme" || c.Merchants[1].Slug != "zen" {
		t.Fatalf("merchants not sorted by name: %+v", c.Merchants)
	}
	if c.Merchants[0].CouponCount != 2 || c.Merchants[1].CouponCount != 1 {
		t.Fatalf("coupon counts wrong: %+v", c.Merchants)
	}

	got := c.CouponsFor("acme")
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Fatalf("CouponsFor(acme) = %+v", got)
	}
	if len(c.CouponsFor("missing")) != 0 {
		t.Fatal("expected no coupons for unknown merchant")
	}
}

func TestCatalogLookups(t *testing.T) {
	c := sampleCatalog()
	if m, ok := c.Merchant("zen"); !ok || m.Name != "Zen Tea" {
		t.Fatalf("Merchant(zen) = %+v, %v", m, ok)
	}
	if _, ok := c.Merchant("nope"); ok {
		t.Fatal("unexpected merchant")
	}
	if got := c.MerchantName("nope"); got != "nope" {
		t.Fatalf("MerchantName fallback = %q", got)
	}

	var nilCat *Catalog
	if !nilCat.Empty() || nilCat.CouponsFor("x") != nil {
		t.Fatal("nil catalog should behave as empty")
	}
}

func TestCatalogSearchRecords(t *testing.T) {
	got := sampleCatalog().SearchRecords()
	want := []search.Record{
		{ID: "1", Name: "acme outdoors", Slug: "acme", SecondaryText: "Outdoor Sports acme.example"},
		{ID: "2", Name: "Zen Tea", Slug: "zen", SecondaryText: "Food"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
}
