// Package service provides the vending machine controller and command processing.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"vending-sim/internal/domain"
	"vending-sim/internal/store"
)

// Machine is the vending machine controller. It owns the catalog, the
// running balance and the current state, and enforces every transition.
// A single mutex guards the whole machine: every operation touches balance
// and stock together.
type Machine struct {
	mu        sync.Mutex
	inventory store.Inventory
	initial   []domain.Item
	balance   int
	state     domain.State
	txID      string
	messages  []string
	history   []domain.HistoryEntry
	logger    *slog.Logger
	now       func() time.Time
}

// Option configures a Machine.
type Option func(*Machine)

// WithLogger sets the structured logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(m *Machine) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithInventory replaces the default in-memory inventory. Nil is ignored.
func WithInventory(inv store.Inventory) Option {
	return func(m *Machine) {
		if inv != nil {
			m.inventory = inv
		}
	}
}

// WithClock overrides the time source used for history entries.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) {
		if now != nil {
			m.now = now
		}
	}
}

// NewMachine creates a machine stocked with items, in the IDLE state.
// A malformed catalog (duplicate or non-positive ids, negative price or
// stock) is rejected here and never surfaces during operation.
func NewMachine(items []domain.Item, opts ...Option) (*Machine, error) {
	if err := domain.ValidateItems(items); err != nil {
		return nil, err
	}

	m := &Machine{
		inventory: store.NewMemoryStore(),
		initial:   domain.CloneItems(items),
		state:     domain.StateIdle,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}

	if err := m.inventory.Load(domain.CloneItems(items)); err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}
	return m, nil
}

// InsertCoin adds coin to the balance. It returns false, changing nothing,
// when the coin is not an accepted denomination or the machine is busy.
// After an accepted coin the state is recomputed: READY_TO_SELECT if any
// in-stock item is affordable, ACCEPTING_MONEY otherwise.
func (m *Machine) InsertCoin(coin int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.note(slog.LevelDebug, fmt.Sprintf("Inserting coin: %d", coin), "coin", coin)

	if !m.state.AcceptsCoins() {
		m.note(slog.LevelWarn, fmt.Sprintf("Cannot insert coin in state %s", m.state), "coin", coin)
		return false
	}
	if !domain.IsAcceptedCoin(coin) {
		m.note(slog.LevelWarn, fmt.Sprintf("Coin %d rejected. Accepted coins: %v", coin, domain.AcceptedCoins), "coin", coin)
		return false
	}

	balance := m.balance + coin
	next := m.purchasableState(balance)

	startedTx := false
	if m.txID == "" {
		m.txID = uuid.NewString()
		startedTx = true
	}
	if err := m.transitionTo(next, "INSERT_COIN", fmt.Sprintf("coin %d", coin)); err != nil {
		if startedTx {
			m.txID = ""
		}
		return false
	}
	m.balance = balance

	m.note(slog.LevelInfo, fmt.Sprintf("Coin %d accepted. Balance: %d", coin, m.balance), "coin", coin)
	return true
}

// SelectItem attempts to buy item id. Checks run in order: machine state,
// id format, catalog membership, stock, then balance; the first failure is
// returned. On success one unit is dispensed, the remaining balance is
// returned as change and the machine goes back to IDLE.
func (m *Machine) SelectItem(id int) domain.SelectionResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.note(slog.LevelDebug, fmt.Sprintf("Selecting item %d", id), "item_id", id)

	if !m.state.AcceptsSelection() {
		m.note(slog.LevelWarn, fmt.Sprintf("Cannot select an item in state %s. Insert a coin first or cancel.", m.state), "item_id", id)
		return domain.WrongState{State: m.state}
	}

	if id <= 0 {
		m.note(slog.LevelWarn, fmt.Sprintf("Item id %d is invalid (must be a positive integer)", id), "item_id", id)
		return domain.InvalidIDFormat{ItemID: id}
	}

	item, err := m.inventory.Get(id)
	if err != nil {
		if !errors.Is(err, domain.ErrItemNotFound) {
			m.logger.Error("inventory lookup failed", "item_id", id, "error", err)
		}
		m.note(slog.LevelWarn, fmt.Sprintf("Item id %d is not in the catalog", id), "item_id", id)
		return domain.ItemNotFound{ItemID: id}
	}

	if !item.InStock() {
		return m.rejectOutOfStock(item)
	}

	if m.balance < item.Price {
		m.note(slog.LevelWarn, fmt.Sprintf("Balance %d is not enough for %s (%d)", m.balance, item.Name, item.Price), "item_id", id)
		if err := m.transitionTo(domain.StateInsufficientFunds, "SELECT", item.Name); err != nil {
			return domain.WrongState{State: m.state}
		}
		return domain.InsufficientFunds{ItemID: id, Name: item.Name, Price: item.Price, Balance: m.balance}
	}

	change := m.balance - item.Price
	path := []domain.State{domain.StateDispensingItem, domain.StateIdle}
	if change > 0 {
		path = []domain.State{domain.StateDispensingItem, domain.StateReturningChange, domain.StateIdle}
	}
	if err := validatePath(m.state, path); err != nil {
		m.logger.Error("refusing dispense", "error", err)
		return domain.WrongState{State: m.state}
	}
	if err := m.inventory.Decrement(id); err != nil {
		if errors.Is(err, domain.ErrOutOfStock) {
			return m.rejectOutOfStock(item)
		}
		m.logger.Error("inventory decrement failed", "item_id", id, "error", err)
		return domain.ItemNotFound{ItemID: id}
	}

	m.note(slog.LevelInfo, fmt.Sprintf("Dispensing %s", item.Name), "item_id", id, "price", item.Price)
	m.advance(domain.StateDispensingItem, "DISPENSE", item.Name)

	if change > 0 {
		m.advance(domain.StateReturningChange, "RETURN_CHANGE", fmt.Sprintf("change %d", change))
		m.note(slog.LevelInfo, fmt.Sprintf("Returning change: %d", change), "change", change)
	} else {
		m.note(slog.LevelDebug, "No change due")
	}
	m.advance(domain.StateIdle, "COMPLETE", item.Name)
	m.balance = 0
	m.txID = ""
	m.note(slog.LevelInfo, "Transaction complete. Machine back to IDLE.")

	return domain.Dispensed{ItemID: id, Name: item.Name, Change: change}
}

// rejectOutOfStock moves to OUT_OF_STOCK_SELECTED, keeping the balance.
func (m *Machine) rejectOutOfStock(item domain.Item) domain.SelectionResult {
	m.note(slog.LevelWarn, fmt.Sprintf("Sorry, %s is sold out", item.Name), "item_id", item.ID)
	if err := m.transitionTo(domain.StateOutOfStockSelected, "SELECT", item.Name); err != nil {
		return domain.WrongState{State: m.state}
	}
	return domain.OutOfStock{ItemID: item.ID, Name: item.Name}
}

// CancelTransaction refunds the whole balance and returns to IDLE.
func (m *Machine) CancelTransaction() domain.CancelResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.note(slog.LevelDebug, "Transaction cancelled by user")

	if m.state.IsTransient() {
		m.note(slog.LevelWarn, "Cannot cancel while an item or change is being dispensed")
		return domain.CancelBusy{State: m.state}
	}

	if err := m.transitionTo(domain.StateIdle, "CANCEL", fmt.Sprintf("returned %d", m.balance)); err != nil {
		return domain.CancelBusy{State: m.state}
	}

	returned := m.balance
	if returned > 0 {
		m.note(slog.LevelInfo, fmt.Sprintf("Refunding balance: %d", returned), "returned", returned)
	} else {
		m.note(slog.LevelDebug, "No balance to refund")
	}
	m.balance = 0
	m.txID = ""
	m.note(slog.LevelInfo, "Machine back to IDLE after cancellation")

	return domain.Cancelled{Returned: returned}
}

// Reset restores every item to its construction-time stock, zeroes the
// balance and returns to IDLE from any state. Messages and history are
// cleared before the reset itself is recorded.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	loadErr := m.inventory.Load(domain.CloneItems(m.initial))

	from := m.state
	m.balance = 0
	m.state = domain.StateIdle
	m.txID = ""
	m.messages = nil
	m.history = nil
	if loadErr != nil {
		m.record(from, domain.StateIdle, "RESET", "stock not restored")
		m.note(slog.LevelError, "Machine reset, but stock could not be restored", "error", loadErr)
		return
	}
	m.record(from, domain.StateIdle, "RESET", "initial configuration restored")
	m.note(slog.LevelInfo, "Machine reset to initial configuration")
}

// State returns the current state.
func (m *Machine) State() domain.State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Balance returns the current balance.
func (m *Machine) Balance() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balance
}

// Stock returns the stock of item id, or false if the id is unknown.
func (m *Machine) Stock(id int) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, err := m.inventory.Get(id)
	if err != nil {
		return 0, false
	}
	return item.Stock, true
}

// Items returns the catalog in ascending id order.
func (m *Machine) Items() []domain.Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.items()
}

// Available returns the in-stock items in ascending id order.
func (m *Machine) Available() []domain.Item {
	m.mu.Lock()
	defer m.mu.Unlock()

	var available []domain.Item
	for _, item := range m.items() {
		if item.InStock() {
			available = append(available, item)
		}
	}
	return available
}

// TxID returns the id of the transaction in progress, empty when IDLE.
func (m *Machine) TxID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.txID
}

// Messages returns a copy of the diagnostic message log.
func (m *Machine) Messages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.messages...)
}

// ClearMessages empties the diagnostic message log.
func (m *Machine) ClearMessages() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = nil
}

// History returns a copy of the recorded state changes.
func (m *Machine) History() []domain.HistoryEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.HistoryEntry(nil), m.history...)
}

// items lists the inventory. Must be called with mu held.
func (m *Machine) items() []domain.Item {
	items, err := m.inventory.List()
	if err != nil {
		m.logger.Error("failed to list inventory", "error", err)
		return nil
	}
	return items
}

// purchasableState picks the post-coin state for balance.
func (m *Machine) purchasableState(balance int) domain.State {
	for _, item := range m.items() {
		if item.Affordable(balance) {
			return domain.StateReadyToSelect
		}
	}
	return domain.StateAcceptingMoney
}

// transitionTo moves to state to if the transition table allows it.
// Must be called with mu held.
func (m *Machine) transitionTo(to domain.State, action, details string) error {
	if err := domain.ValidateTransition(m.state, to); err != nil {
		m.logger.Error("transition rejected", "action", action, "error", err)
		return err
	}
	m.advance(to, action, details)
	return nil
}

// advance moves to state to without consulting the table. Callers
// validate the path first. Must be called with mu held.
func (m *Machine) advance(to domain.State, action, details string) {
	from := m.state
	m.state = to
	m.record(from, to, action, details)
}

// validatePath checks every hop of a multi-step transition.
func validatePath(from domain.State, path []domain.State) error {
	for _, to := range path {
		if err := domain.ValidateTransition(from, to); err != nil {
			return err
		}
		from = to
	}
	return nil
}

func (m *Machine) record(from, to domain.State, action, details string) {
	m.history = append(m.history, domain.HistoryEntry{
		Timestamp: m.now(),
		TxID:      m.txID,
		FromState: from,
		ToState:   to,
		Action:    action,
		Details:   details,
	})
}

// note appends msg to the message log and emits it through the logger.
func (m *Machine) note(level slog.Level, msg string, attrs ...any) {
	m.messages = append(m.messages, msg)
	attrs = append(attrs, "state", m.state, "balance", m.balance)
	if m.txID != "" {
		attrs = append(attrs, "tx_id", m.txID)
	}
	m.logger.Log(context.Background(), level, msg, attrs...)
}
