package service

import (
	"fmt"
	"strconv"
	"strings"

	"vending-sim/internal/domain"
	"vending-sim/internal/parser"
	"vending-sim/internal/ui"
)

// Processor executes parsed commands against a Machine.
type Processor struct {
	machine *Machine
}

// NewProcessor creates a new command processor.
func NewProcessor(machine *Machine) *Processor {
	return &Processor{machine: machine}
}

// Machine returns the controller commands are executed against.
func (p *Processor) Machine() *Machine {
	return p.machine
}

// Execute processes a parsed command and returns the result.
// Rejected business operations are reported as errors so the runner
// prints them as ERROR lines.
func (p *Processor) Execute(cmd *parser.Command) (string, error) {
	switch cmd.Name {
	case "INSERT":
		return p.handleInsert(cmd.Arg(0))
	case "SELECT":
		return p.handleSelect(cmd.Arg(0))
	case "CANCEL":
		return p.handleCancel()
	case "RESET":
		p.machine.Reset()
		return ui.SuccessMsg("Machine reset"), nil
	case "STATUS":
		return ui.Status(p.machine.State(), p.machine.Balance(), p.machine.TxID()), nil
	case "STOCK":
		return p.handleStock(cmd.Arg(0))
	case "LIST":
		return ui.Catalog(p.machine.Available(), len(p.machine.Items()) > 0), nil
	case "LOG":
		return p.handleLog(cmd.Arg(0))
	case "HISTORY":
		return p.handleHistory()
	case "HELP":
		return "Commands: " + strings.Join(parser.Commands(), ", "), nil
	case "EXIT":
		// This should be handled by the runner, not here
		return "", nil
	default:
		return "", fmt.Errorf("unknown command: %s", cmd.Name)
	}
}

// handleInsert handles the INSERT command.
func (p *Processor) handleInsert(arg string) (string, error) {
	coin, err := strconv.Atoi(arg)
	if err != nil {
		return "", fmt.Errorf("invalid coin value: %s", arg)
	}

	state := p.machine.State()
	if !p.machine.InsertCoin(coin) {
		if !state.AcceptsCoins() {
			return "", fmt.Errorf("cannot insert coin in state %s", state)
		}
		return "", fmt.Errorf("coin %d rejected (accepted: %s)", coin, formatCoins())
	}

	return fmt.Sprintf("Coin %d accepted. balance=%d state=%s", coin, p.machine.Balance(), p.machine.State()), nil
}

// handleSelect handles the SELECT command. Malformed ids still go through
// the machine so the state check runs first.
func (p *Processor) handleSelect(arg string) (string, error) {
	id, _ := domain.ParseItemID(arg)

	switch r := p.machine.SelectItem(id).(type) {
	case domain.Dispensed:
		return ui.SuccessMsg("Dispensed %s, change %d", r.Name, r.Change), nil
	case domain.WrongState:
		return "", fmt.Errorf("%s: cannot select in state %s, insert a coin first", r.Code(), r.State)
	case domain.InvalidIDFormat:
		return "", fmt.Errorf("%s: %q is not a positive integer", r.Code(), arg)
	case domain.ItemNotFound:
		return "", fmt.Errorf("%s: item %d does not exist", r.Code(), r.ItemID)
	case domain.OutOfStock:
		return "", fmt.Errorf("%s: %s is sold out", r.Code(), r.Name)
	case domain.InsufficientFunds:
		return "", fmt.Errorf("%s: %s costs %d, balance %d (%d short)", r.Code(), r.Name, r.Price, r.Balance, r.Shortfall())
	default:
		return "", fmt.Errorf("unexpected selection result %T", r)
	}
}

// handleCancel handles the CANCEL command.
func (p *Processor) handleCancel() (string, error) {
	switch r := p.machine.CancelTransaction().(type) {
	case domain.Cancelled:
		return ui.InfoMsg("Transaction cancelled, returned %d", r.Returned), nil
	case domain.CancelBusy:
		return "", fmt.Errorf("%s: machine is %s", r.Code(), r.State)
	default:
		return "", fmt.Errorf("unexpected cancel result %T", r)
	}
}

// handleStock handles the STOCK command.
func (p *Processor) handleStock(arg string) (string, error) {
	id, ok := domain.ParseItemID(arg)
	if !ok {
		return "", fmt.Errorf("invalid item id: %s", arg)
	}
	stock, found := p.machine.Stock(id)
	if !found {
		return "", fmt.Errorf("item %d not found", id)
	}
	return fmt.Sprintf("Item %d: stock=%d", id, stock), nil
}

// handleLog handles the LOG command. "LOG clear" empties the log.
func (p *Processor) handleLog(arg string) (string, error) {
	switch strings.ToLower(arg) {
	case "":
	case "clear":
		p.machine.ClearMessages()
		return "Log cleared", nil
	default:
		return "", fmt.Errorf("unknown LOG option: %s", arg)
	}

	msgs := p.machine.Messages()
	if len(msgs) == 0 {
		return "Log is empty", nil
	}
	var sb strings.Builder
	for _, msg := range msgs {
		sb.WriteString("  - " + msg + "\n")
	}
	return strings.TrimSuffix(sb.String(), "\n"), nil
}

// handleHistory handles the HISTORY command.
func (p *Processor) handleHistory() (string, error) {
	history := p.machine.History()
	if len(history) == 0 {
		return "No history", nil
	}

	rows := make([][]string, 0, len(history))
	for _, h := range history {
		rows = append(rows, []string{
			h.Timestamp.Format("15:04:05"),
			h.FromState.String(),
			h.ToState.String(),
			h.Action,
			h.Details,
		})
	}
	return ui.Table([]string{"TIME", "FROM", "TO", "ACTION", "DETAILS"}, rows), nil
}

func formatCoins() string {
	parts := make([]string, 0, len(domain.AcceptedCoins))
	for _, c := range domain.AcceptedCoins {
		parts = append(parts, strconv.Itoa(c))
	}
	return strings.Join(parts, ", ")
}
