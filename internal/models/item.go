package models

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/stockkeeper/internal/common"
)

// Item is an inventory line owned by one user.
type Item struct {
	ID       int64
	Name     string
	Quantity int
	Owner    string
}

// Validate enforces a non-empty name and a non-negative quantity.
func (i *Item) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return fmt.Errorf("%w: item name cannot be empty", common.ErrorValidation)
	}
	if i.Quantity < 0 {
		return fmt.Errorf("%w: quantity cannot be negative", common.ErrorValidation)
	}
	return nil
}
