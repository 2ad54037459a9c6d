package core

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DropsPerXRP is the number of drops in one XRP
const DropsPerXRP = 1_000_000

var dropsPerXRP = decimal.NewFromInt(DropsPerXRP)

// FormatDrops renders an amount in drops as XRP, e.g. "1500000" -> "1.5 XRP".
// Unparseable amounts render as zero.
func FormatDrops(drops string) string {
	d, err := decimal.NewFromString(strings.TrimSpace(drops))
	if err != nil {
		d = decimal.Zero
	}
	return d.Div(dropsPerXRP).String() + " XRP"
}

// XRPToDrops converts an XRP amount to a whole number of drops
func XRPToDrops(xrp string) (string, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(xrp))
	if err != nil {
		return "", fmt.Errorf("parse xrp amount %q: %w", xrp, ErrInvalidRequest)
	}
	if d.IsNegative() {
		return "", fmt.Errorf("negative xrp amount: %w", ErrInvalidRequest)
	}

	drops := d.Mul(dropsPerXRP)
	if !drops.Equal(drops.Truncate(0)) {
		return "", fmt.Errorf("xrp amount %s is finer than one drop: %w", xrp, ErrInvalidRequest)
	}
	return drops.StringFixed(0), nil
}

// TruncateMiddle shortens text to roughly max characters, keeping both ends
func TruncateMiddle(text string, max int) string {
	r := []rune(text)
	if max <= 0 || len(r) <= max {
		return text
	}
	head := (max + 1) / 2
	tail := max / 2
	return string(r[:head]) + "..." + string(r[len(r)-tail:])
}
