package query

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Sort is the caller-supplied ordering request. Key lookup is
// case-insensitive against the entity's fixed key set; unknown or empty
// keys fall back to the entity's natural date column.
type Sort struct {
	By         string
	Descending bool
}

// applySort orders by the resolved column and always tie-breaks on the
// primary key so pagination stays stable across equal values.
func applySort(db *gorm.DB, s Sort, keys map[string]string, defaultColumn string) *gorm.DB {
	column := defaultColumn
	if s.By != "" {
		if c, ok := keys[strings.ToLower(s.By)]; ok {
			column = c
		}
	}

	dir := "ASC"
	if s.Descending {
		dir = "DESC"
	}

	return db.Order(fmt.Sprintf("%s %s", column, dir)).Order("id ASC")
}
