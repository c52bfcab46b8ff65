package services

import (
	"strconv"
	"strings"

	"github.com/siamlux/siamlux-api/internal/models"
)

// RefKind tags a parsed product reference. Order and purchase rows store
// either a surrogate ID or a legacy code in the same column; a purely
// numeric value could be either, so it stays ambiguous until probed against
// the catalog.
type RefKind int

const (
	RefEmpty RefKind = iota
	RefSurrogate
	RefLegacyCode
	RefAmbiguous
)

// ProductRef is the recorded reference resolved into a tagged union once at
// ingestion rather than re-disambiguated on every read.
type ProductRef struct {
	Raw  string
	Kind RefKind
	ID   uint // set when Kind is RefSurrogate or RefAmbiguous
}

func ParseProductRef(raw string) ProductRef {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ProductRef{Kind: RefEmpty}
	}
	if n, err := strconv.ParseUint(s, 10, 32); err == nil {
		// Numeric legacy codes exist in backfilled data, so a number is not
		// proof of a surrogate ID.
		return ProductRef{Raw: s, Kind: RefAmbiguous, ID: uint(n)}
	}
	return ProductRef{Raw: s, Kind: RefLegacyCode}
}

// Resolver matches recorded references against the product catalog.
type Resolver struct {
	byID   map[uint]*models.Product
	byCode map[string]*models.Product
}

func NewResolver(products []models.Product) *Resolver {
	r := &Resolver{
		byID:   make(map[uint]*models.Product, len(products)),
		byCode: make(map[string]*models.Product, len(products)),
	}
	for i := range products {
		p := &products[i]
		r.byID[p.ID] = p
		if p.Code != "" {
			r.byCode[p.Code] = p
		}
	}
	return r
}

// Resolve returns the product a reference points at, or false when nothing
// matches. Precedence: surrogate ID, then snapshot surrogate ID, then legacy
// code (the raw reference or the snapshot's code), then a numeric legacy
// code that was stored where an ID belongs. Callers must treat an unresolved
// reference as display-only; it never affects stock counters.
func (r *Resolver) Resolve(raw string, snapshotID uint, snapshotCode string) (*models.Product, bool) {
	ref := ParseProductRef(raw)
	if ref.Kind == RefAmbiguous {
		if p, ok := r.byID[ref.ID]; ok {
			return p, true
		}
	}
	if snapshotID != 0 {
		if p, ok := r.byID[snapshotID]; ok {
			return p, true
		}
	}
	if ref.Kind == RefLegacyCode {
		if p, ok := r.byCode[ref.Raw]; ok {
			return p, true
		}
	}
	if snapshotCode != "" {
		if p, ok := r.byCode[snapshotCode]; ok {
			return p, true
		}
	}
	// Backward-compatible rows: a numeric legacy code recorded in the ID
	// position.
	if ref.Kind == RefAmbiguous {
		if p, ok := r.byCode[ref.Raw]; ok {
			return p, true
		}
	}
	return nil, false
}

// ResolveItem resolves an order line using its raw reference and snapshot.
func (r *Resolver) ResolveItem(it models.OrderItem) (*models.Product, bool) {
	return r.Resolve(it.ProductRef, it.SnapshotProductID, it.SnapshotCode)
}
