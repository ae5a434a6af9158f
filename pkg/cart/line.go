package cart

import (
	"encoding/json"
	"fmt"
)

// Product is the subset of a catalog product the cart needs to carry.
type Product struct {
	ID        string
	Name      string
	UnitPrice float64
	ImageRef  string
}

// Line is one product line of a cart. Within a partition the ProductID is
// unique and Quantity is always at least 1; a line that would drop below one
// is removed instead of retained at zero.
//
// The JSON field names are the on-device storage schema. There is no version
// envelope; records written by older builds are read as-is.
type Line struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	ImageRef  string  `json:"imageRef"`
	Quantity  int     `json:"quantity"`
}

// Subtotal returns the line's price contribution.
func (l Line) Subtotal() float64 {
	return l.UnitPrice * float64(l.Quantity)
}

// encodeLines serializes a partition as an ordered JSON array of lines.
func encodeLines(lines []Line) (string, error) {
	if len(lines) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return "", fmt.Errorf("encode cart: %w", err)
	}
	return string(data), nil
}

// decodeLines parses a stored partition, dropping any line that violates the
// quantity invariant so a bad record cannot poison the in-memory view.
func decodeLines(raw string) ([]Line, error) {
	if raw == "" {
		return nil, nil
	}

	var lines []Line
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}

	valid := lines[:0]
	for _, line := range lines {
		if line.ProductID == "" || line.Quantity < 1 {
			continue
		}
		valid = append(valid, line)
	}
	return valid, nil
}
