package domain

import "fmt"

// Result codes of the line protocol.
const (
	CodeWrongState      = "selection_error_wrong_state"
	CodeInvalidIDFormat = "invalid_item_id_format"
	CodeItemNotFound    = "invalid_item_id_not_found"
	CodeOutOfStock      = "out_of_stock"
	CodeInsufficient    = "insufficient_funds"
	CodeCancelBusy      = "cancel_error_busy"
)

// SelectionResult is the outcome of selecting an item.
// The set of implementations is closed: Dispensed, WrongState,
// InvalidIDFormat, ItemNotFound, OutOfStock and InsufficientFunds.
type SelectionResult interface {
	// Code returns the line-protocol code for the result.
	Code() string
	selection()
}

// Dispensed is a successful purchase.
type Dispensed struct {
	ItemID int
	Name   string
	Change int
}

func (r Dispensed) Code() string {
	return fmt.Sprintf("dispensed_%s_change_%d", r.Name, r.Change)
}

// WrongState means the machine was not accepting selections.
type WrongState struct {
	State State
}

func (WrongState) Code() string { return CodeWrongState }

// InvalidIDFormat means the identifier was not a positive integer.
type InvalidIDFormat struct {
	ItemID int
}

func (InvalidIDFormat) Code() string { return CodeInvalidIDFormat }

// ItemNotFound means the identifier is not in the catalog.
type ItemNotFound struct {
	ItemID int
}

func (ItemNotFound) Code() string { return CodeItemNotFound }

// OutOfStock means the item exists but has no stock left.
type OutOfStock struct {
	ItemID int
	Name   string
}

func (OutOfStock) Code() string { return CodeOutOfStock }

// InsufficientFunds means the balance does not cover the price.
type InsufficientFunds struct {
	ItemID  int
	Name    string
	Price   int
	Balance int
}

func (InsufficientFunds) Code() string { return CodeInsufficient }

// Shortfall is the amount still missing for the purchase.
func (r InsufficientFunds) Shortfall() int {
	return r.Price - r.Balance
}

func (Dispensed) selection()         {}
func (WrongState) selection()        {}
func (InvalidIDFormat) selection()   {}
func (ItemNotFound) selection()      {}
func (OutOfStock) selection()        {}
func (InsufficientFunds) selection() {}

// CancelResult is the outcome of cancelling a transaction.
// Implementations: Cancelled and CancelBusy.
type CancelResult interface {
	Code() string
	cancel()
}

// Cancelled carries the refunded balance, zero if nothing was inserted.
type Cancelled struct {
	Returned int
}

func (r Cancelled) Code() string {
	return fmt.Sprintf("cancelled_returned_%d", r.Returned)
}

// CancelBusy means the machine was mid-dispense.
type CancelBusy struct {
	State State
}

func (CancelBusy) Code() string { return CodeCancelBusy }

func (Cancelled) cancel()  {}
func (CancelBusy) cancel() {}
