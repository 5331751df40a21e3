// Package parser handles parsing of command lines for the vending machine CLI.
package parser

import (
	"fmt"
	"sort"
	"strings"
)

// Command represents a parsed command with its name and arguments.
type Command struct {
	Name string
	Args []string
}

// Arg returns the i-th argument, or "" when absent.
func (c *Command) Arg(i int) string {
	if i < 0 || i >= len(c.Args) {
		return ""
	}
	return c.Args[i]
}

// commandArgCounts defines the number of REQUIRED arguments for each command.
// Optional arguments are not counted here.
var commandArgCounts = map[string]int{
	"INSERT":  1, // <coin>
	"SELECT":  1, // <item_id>
	"CANCEL":  0,
	"RESET":   0,
	"STATUS":  0,
	"STOCK":   1, // <item_id>
	"LIST":    0,
	"LOG":     0, // [clear]
	"HISTORY": 0,
	"HELP":    0,
	"EXIT":    0,
}

// Parse parses a command line into a Command struct.
// Command names are case-insensitive and normalized to upper case.
// A token starting with '#' ends the line once the required arguments are
// consumed; before that it is malformed input.
func Parse(line string) (*Command, error) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("empty input")
	}

	name := strings.ToUpper(tokens[0])
	required, known := commandArgCounts[name]
	if !known {
		return nil, fmt.Errorf("unknown command: %s", tokens[0])
	}

	args, err := extractArgs(tokens[1:], required, name)
	if err != nil {
		return nil, err
	}

	return &Command{
		Name: name,
		Args: args,
	}, nil
}

// extractArgs collects arguments up to the first comment token.
func extractArgs(tokens []string, requiredCount int, cmdName string) ([]string, error) {
	args := make([]string, 0, requiredCount)

	for _, token := range tokens {
		isComment := strings.HasPrefix(token, "#")
		if len(args) < requiredCount {
			if isComment {
				return nil, fmt.Errorf("malformed input: unexpected '#' in required argument position for %s", cmdName)
			}
			args = append(args, token)
			continue
		}
		if isComment {
			break
		}
		// optional argument, e.g. "clear" for LOG
		args = append(args, token)
	}

	if len(args) < requiredCount {
		return nil, fmt.Errorf("insufficient arguments for %s: expected %d, got %d", cmdName, requiredCount, len(args))
	}

	return args, nil
}

// IsValidCommand checks if a command name is valid.
func IsValidCommand(name string) bool {
	_, ok := commandArgCounts[strings.ToUpper(name)]
	return ok
}

// GetRequiredArgCount returns the number of required arguments for a command.
func GetRequiredArgCount(name string) (int, bool) {
	count, ok := commandArgCounts[strings.ToUpper(name)]
	return count, ok
}

// Commands returns all command names in alphabetical order.
func Commands() []string {
	names := make([]string, 0, len(commandArgCounts))
	for name := range commandArgCounts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
