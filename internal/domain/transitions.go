package domain

// selectionOutcomes are the states a selectable state may move to.
var selectionOutcomes = []State{
	StateAcceptingMoney,
	StateReadyToSelect,
	StateOutOfStockSelected,
	StateInsufficientFunds,
	StateDispensingItem,
	StateIdle,
}

// AllowedTransitions defines the valid state transitions.
// The key is the current state, and the value is a slice of valid target states.
// Reset is not listed: it returns to IDLE from anywhere.
var AllowedTransitions = map[State][]State{
	StateIdle: {
		StateAcceptingMoney,
		StateReadyToSelect,
		StateIdle, // cancel with nothing inserted
	},
	StateAcceptingMoney:     selectionOutcomes,
	StateReadyToSelect:      selectionOutcomes,
	StateOutOfStockSelected: selectionOutcomes,
	StateInsufficientFunds:  selectionOutcomes,
	StateDispensingItem: {
		StateReturningChange,
		StateIdle,
	},
	StateReturningChange: {
		StateIdle,
	},
}

// CanTransition checks if a transition from one state to another is allowed.
func CanTransition(from, to State) bool {
	allowed, exists := AllowedTransitions[from]
	if !exists {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// ValidateTransition returns an error if the transition is not allowed.
func ValidateTransition(from, to State) error {
	if !CanTransition(from, to) {
		return NewInvalidTransitionError(from, to)
	}
	return nil
}
