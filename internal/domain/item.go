// Package domain contains the core entities and rules of the vending machine.
package domain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// AcceptedCoins is the closed set of coin denominations the machine takes,
// in the smallest currency unit.
var AcceptedCoins = []int{500, 1000, 2000}

// IsAcceptedCoin reports whether value is one of AcceptedCoins.
func IsAcceptedCoin(value int) bool {
	return slices.Contains(AcceptedCoins, value)
}

// Item is a single catalog entry.
type Item struct {
	ID    int    `yaml:"id"`
	Name  string `yaml:"name"`
	Price int    `yaml:"price"`
	Stock int    `yaml:"stock"`
}

// InStock reports whether at least one unit is left.
func (i Item) InStock() bool {
	return i.Stock > 0
}

// Affordable reports whether the item is in stock and balance covers its price.
func (i Item) Affordable(balance int) bool {
	return i.InStock() && i.Price <= balance
}

// Validate checks a single item definition.
func (i Item) Validate() error {
	if i.ID <= 0 {
		return NewValidationError("id", fmt.Sprintf("item id must be a positive integer, got %d", i.ID), ErrInvalidItem)
	}
	if i.Price < 0 {
		return NewValidationError("price", fmt.Sprintf("item %d has negative price %d", i.ID, i.Price), ErrInvalidItem)
	}
	if i.Stock < 0 {
		return NewValidationError("stock", fmt.Sprintf("item %d has negative stock %d", i.ID, i.Stock), ErrInvalidItem)
	}
	return nil
}

// ValidateItems checks an ordered catalog configuration.
// Identifiers must be unique; each item must pass Validate.
func ValidateItems(items []Item) error {
	seen := make(map[int]bool, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		if seen[item.ID] {
			return NewValidationError("id", fmt.Sprintf("item id %d defined more than once", item.ID), ErrDuplicateItem)
		}
		seen[item.ID] = true
	}
	return nil
}

// CloneItems returns a copy of items that shares no state with the input.
func CloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	return slices.Clone(items)
}

// InvalidItemID is what ParseItemID yields for malformed input.
const InvalidItemID = 0

// ParseItemID parses a base-10 item identifier.
// Malformed input returns InvalidItemID and false; the controller reports
// that id as invalid_item_id_format.
func ParseItemID(s string) (int, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return InvalidItemID, false
	}
	return id, true
}
