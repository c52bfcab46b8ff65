package services

import (
	"fmt"
	"testing"

	"github.com/siamlux/siamlux-api/internal/models"
)

func catalog() []models.Product {
	return []models.Product{
		{ID: 1, Code: "AA001", Name: "Chandelier A"},
		{ID: 2, Code: "BB002", Name: "Pendant B"},
		{ID: 3, Code: "777", Name: "Numeric-coded legacy product"},
	}
}

func TestParseProductRef(t *testing.T) {
	if ref := ParseProductRef(""); ref.Kind != RefEmpty {
		t.Fatalf("empty ref parsed as %v", ref.Kind)
	}
	if ref := ParseProductRef("AA001"); ref.Kind != RefLegacyCode {
		t.Fatalf("code ref parsed as %v", ref.Kind)
	}
	// Numbers stay ambiguous: they may be IDs or numeric legacy codes.
	if ref := ParseProductRef("42"); ref.Kind != RefAmbiguous || ref.ID != 42 {
		t.Fatalf("numeric ref parsed as %v id=%d", ref.Kind, ref.ID)
	}
}

func TestResolvePrecedence(t *testing.T) {
	r := NewResolver(catalog())

	// (a) surrogate id wins
	if p, ok := r.Resolve("2", 0, ""); !ok || p.Code != "BB002" {
		t.Fatalf("surrogate id resolution failed: %+v ok=%v", p, ok)
	}
	// (b) snapshot surrogate id
	if p, ok := r.Resolve("", 1, ""); !ok || p.Code != "AA001" {
		t.Fatalf("snapshot id resolution failed")
	}
	// (c) legacy code, raw ref then snapshot code
	if p, ok := r.Resolve("AA001", 0, ""); !ok || p.ID != 1 {
		t.Fatalf("legacy code resolution failed")
	}
	if p, ok := r.Resolve("", 0, "BB002"); !ok || p.ID != 2 {
		t.Fatalf("snapshot code resolution failed")
	}
	// (d) numeric legacy code stored in the id position: 777 is no product
	// ID, but it is product 3's code.
	if p, ok := r.Resolve("777", 0, ""); !ok || p.ID != 3 {
		t.Fatalf("numeric legacy code fallback failed")
	}
	// unresolved
	if _, ok := r.Resolve("ZZ999", 0, ""); ok {
		t.Fatal("expected unresolved reference")
	}
	if _, ok := r.Resolve("", 0, ""); ok {
		t.Fatal("empty reference must not resolve")
	}
}

// Scenario D resolution half: the same product referenced by legacy code in
// one line and surrogate id in another resolves to one product.
func TestResolveDualIdentitySameProduct(t *testing.T) {
	products := catalog()
	r := NewResolver(products)
	byCode, ok1 := r.ResolveItem(models.OrderItem{ProductRef: "AA001"})
	byID, ok2 := r.ResolveItem(models.OrderItem{ProductRef: fmt.Sprint(products[0].ID)})
	if !ok1 || !ok2 {
		t.Fatal("both spellings must resolve")
	}
	if byCode != byID {
		t.Fatalf("spellings resolved to different products: %v vs %v", byCode.ID, byID.ID)
	}
}
