package specification

import "gorm.io/gorm"

// Specification composes a filter, ordering or paging clause onto a query.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}
