package repository

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"stockalerts/internal/rule"
)

// DynamoRuleRepository persists rules in a single DynamoDB table, partitioned
// by user and indexed secondarily by ticker+direction.
type DynamoRuleRepository struct {
	store *Store
}

func NewDynamoRuleRepository(store *Store) *DynamoRuleRepository {
	return &DynamoRuleRepository{store: store}
}

func (r *DynamoRuleRepository) Put(ctx context.Context, ru *rule.Rule) error {
	return r.store.Put(ctx, toItem(ru))
}

func (r *DynamoRuleRepository) Get(ctx context.Context, userID, ruleID string) (*rule.Rule, error) {
	pk, sk := PrimaryKey(userID, ruleID)
	item, err := r.store.Get(ctx, pk, sk)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	return fromItem(item)
}

func (r *DynamoRuleRepository) Delete(ctx context.Context, userID, ruleID string) error {
	pk, sk := PrimaryKey(userID, ruleID)
	return r.store.Delete(ctx, pk, sk)
}

func (r *DynamoRuleRepository) ListByUser(ctx context.Context, userID string) ([]*rule.Rule, error) {
	items, err := r.store.QueryPartition(ctx, userKeyPrefix+userID)
	if err != nil {
		return nil, err
	}
	return rulesFromItems(items)
}

func (r *DynamoRuleRepository) ListByTickerDirection(ctx context.Context, ticker string, d rule.Direction) ([]*rule.Rule, error) {
	key := rule.TickerDirectionKey(ticker, d)
	items, err := r.store.QueryIndex(ctx, IndexTickerDirection, attrTickerDirection, key)
	if err != nil {
		return nil, err
	}
	return rulesFromItems(items)
}

func rulesFromItems(items []map[string]types.AttributeValue) ([]*rule.Rule, error) {
	rules := make([]*rule.Rule, 0, len(items))
	for _, item := range items {
		ru, err := fromItem(item)
		if err != nil {
			return nil, err
		}
		rules = append(rules, ru)
	}
	return rules, nil
}
