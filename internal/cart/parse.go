package cart

import (
	"fmt"
	"strconv"
	"strings"
)

// Tokens that end the selection loop of a checkout.
var endOfSelection = []string{"fim", "end"}

func IsEndOfSelection(raw string) bool {
	raw = strings.TrimSpace(raw)
	for _, tok := range endOfSelection {
		if strings.EqualFold(raw, tok) {
			return true
		}
	}
	return false
}

func ParseQuantity(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	qty, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a whole number", ErrInvalidQuantity, raw)
	}
	if qty <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidQuantity, qty)
	}
	return qty, nil
}
