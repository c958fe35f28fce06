package rule

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Direction tells which side of the threshold triggers the alert.
type Direction string

const (
	DirectionAbove Direction = "ABOVE"
	DirectionBelow Direction = "BELOW"
)

// ParseDirection fails closed: anything outside ABOVE/BELOW is rejected.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionAbove:
		return DirectionAbove, nil
	case DirectionBelow:
		return DirectionBelow, nil
	}
	return "", fmt.Errorf("unknown direction %q", s)
}

type Rule struct {
	UserID    string          `json:"userId"`
	RuleID    string          `json:"ruleId"`
	Ticker    string          `json:"ticker"`
	Direction Direction       `json:"direction"`
	Threshold decimal.Decimal `json:"threshold"`
	Enabled   bool            `json:"enabled"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// NormalizeTicker canonicalizes a ticker symbol before storage or comparison.
// Idempotent: normalizing twice gives the same result.
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// TickerDirectionKey builds the secondary-index partition key, e.g. "TSLA#ABOVE".
func TickerDirectionKey(ticker string, d Direction) string {
	return ticker + "#" + string(d)
}

// TickerDirection is the secondary-index partition key for the rule's current
// ticker and direction. Must be recomputed on every write.
func (r *Rule) TickerDirection() string {
	return TickerDirectionKey(r.Ticker, r.Direction)
}
