package listings

import (
	"strings"

	"wasteline-backend/internal/domain"

	"gorm.io/gorm"
)

// Filters is the optional listing search criteria. All specified predicates
// are combined with AND; pagination is applied only after filtering and
// ordering.
type Filters struct {
	WasteType   string
	Location    string
	MinPrice    *float64
	MaxPrice    *float64
	Status      string
	IncludeSold bool
	Limit       int
	Offset      int
}

// Apply builds the query: conjunctive predicates, newest-first ordering, then
// limit/offset. When no status is requested and IncludeSold is false, SOLD
// listings are excluded.
func (f Filters) Apply(q *gorm.DB) *gorm.DB {
	if f.WasteType != "" {
		q = q.Where("waste_type = ?", f.WasteType)
	}
	if f.Location != "" {
		q = q.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(f.Location)+"%")
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	} else if !f.IncludeSold {
		q = q.Where("status <> ?", domain.ListingSold)
	}
	q = q.Order("created_at DESC").Order("id DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}
	return q
}
