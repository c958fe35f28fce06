package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"stockalerts/internal/rule"
)

var (
	ErrNotFound   = errors.New("rule not found")
	ErrValidation = errors.New("invalid rule")
)

// RuleRepository is what the service needs from persistence. Get returns
// (nil, nil) when the rule does not exist.
type RuleRepository interface {
	Put(ctx context.Context, r *rule.Rule) error
	Get(ctx context.Context, userID, ruleID string) (*rule.Rule, error)
	Delete(ctx context.Context, userID, ruleID string) error
	ListByUser(ctx context.Context, userID string) ([]*rule.Rule, error)
	ListByTickerDirection(ctx context.Context, ticker string, d rule.Direction) ([]*rule.Rule, error)
}

// RuleService owns the rule lifecycle: id generation, defaults, normalization
// and timestamps. Read-modify-write sequences (update, delete) are not atomic
// against concurrent requests; the later put wins.
type RuleService struct {
	repo RuleRepository
}

func NewRuleService(repo RuleRepository) *RuleService {
	return &RuleService{repo: repo}
}

// UpdatePatch carries the optional fields of a partial update. Nil fields
// keep their prior values.
type UpdatePatch struct {
	Ticker    *string
	Direction *rule.Direction
	Threshold *decimal.Decimal
	Enabled   *bool
}

func (s *RuleService) CreateRule(ctx context.Context, userID, ticker string, direction rule.Direction, threshold decimal.Decimal, enabled *bool) (*rule.Rule, error) {
	ticker = rule.NormalizeTicker(ticker)
	if ticker == "" {
		return nil, fmt.Errorf("%w: ticker must not be blank", ErrValidation)
	}
	if err := validDirection(direction); err != nil {
		return nil, err
	}
	if threshold.Sign() <= 0 {
		return nil, fmt.Errorf("%w: threshold must be greater than zero", ErrValidation)
	}

	now := time.Now().UTC()
	r := &rule.Rule{
		UserID:    userID,
		RuleID:    uuid.NewString(),
		Ticker:    ticker,
		Direction: direction,
		Threshold: threshold,
		Enabled:   enabled == nil || *enabled,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Put(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *RuleService) UpdateRule(ctx context.Context, userID, ruleID string, patch UpdatePatch) (*rule.Rule, error) {
	r, err := s.repo.Get(ctx, userID, ruleID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrNotFound
	}

	if patch.Ticker != nil {
		ticker := rule.NormalizeTicker(*patch.Ticker)
		if ticker == "" {
			return nil, fmt.Errorf("%w: ticker must not be blank", ErrValidation)
		}
		r.Ticker = ticker
	}
	if patch.Direction != nil {
		if err := validDirection(*patch.Direction); err != nil {
			return nil, err
		}
		r.Direction = *patch.Direction
	}
	if patch.Threshold != nil {
		if patch.Threshold.Sign() <= 0 {
			return nil, fmt.Errorf("%w: threshold must be greater than zero", ErrValidation)
		}
		r.Threshold = *patch.Threshold
	}
	if patch.Enabled != nil {
		r.Enabled = *patch.Enabled
	}

	r.UpdatedAt = time.Now().UTC()

	// Full overwrite of the merged record. The mapper derives the secondary
	// index key from the post-patch ticker and direction in the same write.
	if err := s.repo.Put(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *RuleService) DeleteRule(ctx context.Context, userID, ruleID string) error {
	// Existence check for a clean NotFound; not atomic with the delete.
	r, err := s.repo.Get(ctx, userID, ruleID)
	if err != nil {
		return err
	}
	if r == nil {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, userID, ruleID)
}

func (s *RuleService) GetRule(ctx context.Context, userID, ruleID string) (*rule.Rule, error) {
	r, err := s.repo.Get(ctx, userID, ruleID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrNotFound
	}
	return r, nil
}

func (s *RuleService) ListRules(ctx context.Context, userID string) ([]*rule.Rule, error) {
	return s.repo.ListByUser(ctx, userID)
}

// ListByTicker is the read path a notification scanner consumes: all rules
// for a ticker/direction pair ordered by threshold. Disabled rules are
// included; callers filter.
func (s *RuleService) ListByTicker(ctx context.Context, ticker string, direction rule.Direction) ([]*rule.Rule, error) {
	ticker = rule.NormalizeTicker(ticker)
	if ticker == "" {
		return nil, fmt.Errorf("%w: ticker must not be blank", ErrValidation)
	}
	if err := validDirection(direction); err != nil {
		return nil, err
	}
	return s.repo.ListByTickerDirection(ctx, ticker, direction)
}

func validDirection(d rule.Direction) error {
	if _, err := rule.ParseDirection(string(d)); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}
