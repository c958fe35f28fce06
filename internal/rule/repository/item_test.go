package repository

import (
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockalerts/internal/rule"
)

func testRule() *rule.Rule {
	created := time.Date(2026, 3, 14, 9, 26, 53, 589793000, time.UTC)
	return &rule.Rule{
		UserID:    "u1",
		RuleID:    "9f2c1f34-1111-4222-8333-444455556666",
		Ticker:    "TSLA",
		Direction: rule.DirectionAbove,
		Threshold: decimal.RequireFromString("250.00"),
		Enabled:   true,
		CreatedAt: created,
		UpdatedAt: created.Add(2 * time.Minute),
	}
}

func TestPrimaryKey(t *testing.T) {
	pk, sk := PrimaryKey("u1", "r1")
	assert.Equal(t, "USER#u1", pk)
	assert.Equal(t, "RULE#r1", sk)
}

func TestToItem(t *testing.T) {
	item := toItem(testRule())

	assert.Equal(t, &types.AttributeValueMemberS{Value: "USER#u1"}, item[attrPK])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "RULE#9f2c1f34-1111-4222-8333-444455556666"}, item[attrSK])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "TSLA"}, item[attrTicker])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "ABOVE"}, item[attrDirection])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "TSLA#ABOVE"}, item[attrTickerDirection])
	assert.Equal(t, &types.AttributeValueMemberBOOL{Value: true}, item[attrEnabled])

	// Threshold must be a DynamoDB number carrying the exact decimal.
	n, ok := item[attrThreshold].(*types.AttributeValueMemberN)
	require.True(t, ok)
	assert.True(t, decimal.RequireFromString("250.00").Equal(decimal.RequireFromString(n.Value)))
}

func TestRoundTrip(t *testing.T) {
	r := testRule()

	got, err := fromItem(toItem(r))
	require.NoError(t, err)

	assert.Equal(t, r.UserID, got.UserID)
	assert.Equal(t, r.RuleID, got.RuleID)
	assert.Equal(t, r.Ticker, got.Ticker)
	assert.Equal(t, r.Direction, got.Direction)
	assert.Equal(t, r.Enabled, got.Enabled)
	assert.True(t, r.Threshold.Equal(got.Threshold), "threshold drifted: %s != %s", r.Threshold, got.Threshold)
	assert.True(t, r.CreatedAt.Equal(got.CreatedAt))
	assert.True(t, r.UpdatedAt.Equal(got.UpdatedAt))
}

func TestFromItemMalformed(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(map[string]types.AttributeValue)
	}{
		{
			name: "unknown direction",
			mutate: func(item map[string]types.AttributeValue) {
				item[attrDirection] = &types.AttributeValueMemberS{Value: "SIDEWAYS"}
			},
		},
		{
			name: "threshold not a decimal",
			mutate: func(item map[string]types.AttributeValue) {
				item[attrThreshold] = &types.AttributeValueMemberN{Value: "not-a-number"}
			},
		},
		{
			name: "threshold wrong type",
			mutate: func(item map[string]types.AttributeValue) {
				item[attrThreshold] = &types.AttributeValueMemberS{Value: "250.00"}
			},
		},
		{
			name: "missing ticker",
			mutate: func(item map[string]types.AttributeValue) {
				delete(item, attrTicker)
			},
		},
		{
			name: "enabled wrong type",
			mutate: func(item map[string]types.AttributeValue) {
				item[attrEnabled] = &types.AttributeValueMemberS{Value: "true"}
			},
		},
		{
			name: "created_at not a timestamp",
			mutate: func(item map[string]types.AttributeValue) {
				item[attrCreatedAt] = &types.AttributeValueMemberS{Value: "yesterday"}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := toItem(testRule())
			tt.mutate(item)

			_, err := fromItem(item)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedRecord)
		})
	}
}
