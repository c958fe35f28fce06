package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"

	"stockalerts/internal/rule"
)

const (
	attrPK              = "pk"
	attrSK              = "sk"
	attrUserID          = "user_id"
	attrRuleID          = "rule_id"
	attrTicker          = "ticker"
	attrDirection       = "direction"
	attrThreshold       = "threshold"
	attrEnabled         = "enabled"
	attrTickerDirection = "ticker_direction"
	attrCreatedAt       = "created_at"
	attrUpdatedAt       = "updated_at"

	userKeyPrefix = "USER#"
	ruleKeyPrefix = "RULE#"

	// IndexTickerDirection must match the GSI name on the table exactly.
	IndexTickerDirection = "TickerDirectionThresholdIndex"
)

// ErrMalformedRecord means a stored item could not be decoded into a rule.
// This is a data-integrity problem, not a user error.
var ErrMalformedRecord = errors.New("malformed rule record")

// PrimaryKey returns the composite key for a rule: ("USER#"+userId, "RULE#"+ruleId).
func PrimaryKey(userID, ruleID string) (string, string) {
	return userKeyPrefix + userID, ruleKeyPrefix + ruleID
}

// toItem flattens a rule into its stored attribute set, including the derived
// secondary-index partition key. Threshold is stored as a DynamoDB number so
// it round-trips exactly and sorts numerically in the index.
func toItem(r *rule.Rule) map[string]types.AttributeValue {
	pk, sk := PrimaryKey(r.UserID, r.RuleID)
	return map[string]types.AttributeValue{
		attrPK:              &types.AttributeValueMemberS{Value: pk},
		attrSK:              &types.AttributeValueMemberS{Value: sk},
		attrUserID:          &types.AttributeValueMemberS{Value: r.UserID},
		attrRuleID:          &types.AttributeValueMemberS{Value: r.RuleID},
		attrTicker:          &types.AttributeValueMemberS{Value: r.Ticker},
		attrDirection:       &types.AttributeValueMemberS{Value: string(r.Direction)},
		attrThreshold:       &types.AttributeValueMemberN{Value: r.Threshold.String()},
		attrEnabled:         &types.AttributeValueMemberBOOL{Value: r.Enabled},
		attrTickerDirection: &types.AttributeValueMemberS{Value: r.TickerDirection()},
		attrCreatedAt:       &types.AttributeValueMemberS{Value: r.CreatedAt.UTC().Format(time.RFC3339Nano)},
		attrUpdatedAt:       &types.AttributeValueMemberS{Value: r.UpdatedAt.UTC().Format(time.RFC3339Nano)},
	}
}

func fromItem(item map[string]types.AttributeValue) (*rule.Rule, error) {
	userID, err := stringAttr(item, attrUserID)
	if err != nil {
		return nil, err
	}
	ruleID, err := stringAttr(item, attrRuleID)
	if err != nil {
		return nil, err
	}
	ticker, err := stringAttr(item, attrTicker)
	if err != nil {
		return nil, err
	}
	dirRaw, err := stringAttr(item, attrDirection)
	if err != nil {
		return nil, err
	}
	direction, err := rule.ParseDirection(dirRaw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	thresholdRaw, err := numberAttr(item, attrThreshold)
	if err != nil {
		return nil, err
	}
	threshold, err := decimal.NewFromString(thresholdRaw)
	if err != nil {
		return nil, fmt.Errorf("%w: threshold %q is not a decimal", ErrMalformedRecord, thresholdRaw)
	}
	enabled, err := boolAttr(item, attrEnabled)
	if err != nil {
		return nil, err
	}
	createdAt, err := timeAttr(item, attrCreatedAt)
	if err != nil {
		return nil, err
	}
	updatedAt, err := timeAttr(item, attrUpdatedAt)
	if err != nil {
		return nil, err
	}

	return &rule.Rule{
		UserID:    userID,
		RuleID:    ruleID,
		Ticker:    ticker,
		Direction: direction,
		Threshold: threshold,
		Enabled:   enabled,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

func stringAttr(item map[string]types.AttributeValue, name string) (string, error) {
	v, ok := item[name].(*types.AttributeValueMemberS)
	if !ok {
		return "", fmt.Errorf("%w: attribute %q missing or not a string", ErrMalformedRecord, name)
	}
	return v.Value, nil
}

func numberAttr(item map[string]types.AttributeValue, name string) (string, error) {
	v, ok := item[name].(*types.AttributeValueMemberN)
	if !ok {
		return "", fmt.Errorf("%w: attribute %q missing or not a number", ErrMalformedRecord, name)
	}
	return v.Value, nil
}

func boolAttr(item map[string]types.AttributeValue, name string) (bool, error) {
	v, ok := item[name].(*types.AttributeValueMemberBOOL)
	if !ok {
		return false, fmt.Errorf("%w: attribute %q missing or not a boolean", ErrMalformedRecord, name)
	}
	return v.Value, nil
}

func timeAttr(item map[string]types.AttributeValue, name string) (time.Time, error) {
	raw, err := stringAttr(item, name)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: attribute %q is not an RFC 3339 timestamp", ErrMalformedRecord, name)
	}
	return t, nil
}
