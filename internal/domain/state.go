package domain

import "time"

// State is the machine's current position in the transaction lifecycle.
type State string

// Machine states.
const (
	StateIdle               State = "IDLE"
	StateAcceptingMoney     State = "ACCEPTING_MONEY"
	StateReadyToSelect      State = "READY_TO_SELECT"
	StateOutOfStockSelected State = "OUT_OF_STOCK_SELECTED"
	StateInsufficientFunds  State = "INSUFFICIENT_FUNDS_FOR_SELECTION"
	StateDispensingItem     State = "DISPENSING_ITEM"
	StateReturningChange    State = "RETURNING_CHANGE"
)

func (s State) String() string {
	return string(s)
}

// IsTransient reports whether s only exists inside a single selection.
// Transient states are never observable between operations.
func (s State) IsTransient() bool {
	return s == StateDispensingItem || s == StateReturningChange
}

// AcceptsCoins reports whether a coin may be inserted in s.
func (s State) AcceptsCoins() bool {
	switch s {
	case StateIdle, StateAcceptingMoney, StateReadyToSelect, StateOutOfStockSelected, StateInsufficientFunds:
		return true
	}
	return false
}

// AcceptsSelection reports whether an item may be selected in s.
// IDLE is excluded: a selection needs money in the machine first.
func (s State) AcceptsSelection() bool {
	switch s {
	case StateAcceptingMoney, StateReadyToSelect, StateOutOfStockSelected, StateInsufficientFunds:
		return true
	}
	return false
}

// HistoryEntry records a single committed state change.
type HistoryEntry struct {
	Timestamp time.Time
	TxID      string
	FromState State
	ToState   State
	Action    string
	Details   string
}
