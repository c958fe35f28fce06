package rule

import "context"

// Repository is the persistence contract for rules. Get returns (nil, nil)
// when no rule exists for the key.
type Repository interface {
	Put(ctx context.Context, r *Rule) error
	Get(ctx context.Context, userID, ruleID string) (*Rule, error)
	Delete(ctx context.Context, userID, ruleID string) error
	ListByUser(ctx context.Context, userID string) ([]*Rule, error)
	ListByTickerDirection(ctx context.Context, ticker string, d Direction) ([]*Rule, error)
}
