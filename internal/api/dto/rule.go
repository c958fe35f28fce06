package dto

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"stockalerts/internal/rule"
)

type CreateRuleRequest struct {
	Ticker    string          `json:"ticker" validate:"required"`
	Direction string          `json:"direction" validate:"required,oneof=ABOVE BELOW"`
	Threshold decimal.Decimal `json:"threshold" validate:"required"`
	Enabled   *bool           `json:"enabled"`
}

type UpdateRuleRequest struct {
	Ticker    *string          `json:"ticker" validate:"omitempty,min=1"`
	Direction *string          `json:"direction" validate:"omitempty,oneof=ABOVE BELOW"`
	Threshold *decimal.Decimal `json:"threshold"`
	Enabled   *bool            `json:"enabled"`
}

type RuleResponse struct {
	UserID    string          `json:"userId"`
	RuleID    string          `json:"ruleId"`
	Ticker    string          `json:"ticker"`
	Direction string          `json:"direction"`
	Threshold decimal.Decimal `json:"threshold"`
	Enabled   bool            `json:"enabled"`
	CreatedAt string          `json:"createdAt"`
	UpdatedAt string          `json:"updatedAt"`
}

func RuleResponseFrom(r *rule.Rule) RuleResponse {
	return RuleResponse{
		UserID:    r.UserID,
		RuleID:    r.RuleID,
		Ticker:    r.Ticker,
		Direction: string(r.Direction),
		Threshold: r.Threshold,
		Enabled:   r.Enabled,
		CreatedAt: r.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt: r.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

var Validate = validator.New()
