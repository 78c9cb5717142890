package bracket

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"
)

// ParseTickets reads ticket numbers the way the operator types them,
// e.g. "5, 12, 88" or "5 12 88".
func ParseTickets(input string) ([]int, error) {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ';' || unicode.IsSpace(r)
	})

	tickets := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(strings.TrimPrefix(f, "#"))
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a ticket number", ErrValidation, f)
		}
		tickets = append(tickets, n)
	}
	return tickets, nil
}

func validateTickets(tickets []int) error {
	if len(tickets) == 0 {
		return fmt.Errorf("%w: at least one ticket between %d and %d is required", ErrValidation, MinTicket, MaxTicket)
	}
	if len(tickets) > MaxTicketsPerPlayer {
		return fmt.Errorf("%w: a participant can hold at most %d tickets", ErrValidation, MaxTicketsPerPlayer)
	}

	seen := make(map[int]bool, len(tickets))
	for _, n := range tickets {
		if n < MinTicket || n > MaxTicket {
			return fmt.Errorf("%w: ticket %s is outside %d-%d", ErrValidation, TicketLabel(n), MinTicket, MaxTicket)
		}
		if seen[n] {
			return fmt.Errorf("%w: ticket %s repeated", ErrValidation, TicketLabel(n))
		}
		seen[n] = true
	}
	return nil
}

// TicketLabel formats a ticket number as printed on the draw balls.
func TicketLabel(n int) string {
	return fmt.Sprintf("#%03d", n)
}

func ticketList(tickets []int) string {
	sorted := slices.Clone(tickets)
	slices.Sort(sorted)
	labels := make([]string, len(sorted))
	for i, n := range sorted {
		labels[i] = TicketLabel(n)
	}
	return strings.Join(labels, ", ")
}
