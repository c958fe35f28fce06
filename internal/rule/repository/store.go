package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"stockalerts/internal/metrics"
)

// Store is a thin typed wrapper over one DynamoDB table. All operations are
// single network calls; the store performs no retries and no caching (retry
// policy belongs to the SDK client configuration).
type Store struct {
	client *dynamodb.Client
	table  string
}

func NewStore(client *dynamodb.Client, table string) *Store {
	return &Store{client: client, table: table}
}

// Put is an unconditional upsert keyed by (pk, sk). Last writer wins.
func (s *Store) Put(ctx context.Context, item map[string]types.AttributeValue) error {
	start := time.Now()
	_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	observe("put_item", start, err)
	if err != nil {
		return fmt.Errorf("dynamo put: %w", err)
	}
	return nil
}

// Get is a point lookup. Returns nil when no item exists for the key.
func (s *Store) Get(ctx context.Context, pk, sk string) (map[string]types.AttributeValue, error) {
	start := time.Now()
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key:       keyAttrs(pk, sk),
	})
	observe("get_item", start, err)
	if err != nil {
		return nil, fmt.Errorf("dynamo get: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	return out.Item, nil
}

// Delete removes the item for the key. Idempotent: deleting an absent item
// is not an error at this layer.
func (s *Store) Delete(ctx context.Context, pk, sk string) error {
	start := time.Now()
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key:       keyAttrs(pk, sk),
	})
	observe("delete_item", start, err)
	if err != nil {
		return fmt.Errorf("dynamo delete: %w", err)
	}
	return nil
}

// QueryPartition returns every item sharing the partition key, in sort-key
// order, with pagination flattened away.
func (s *Store) QueryPartition(ctx context.Context, pk string) ([]map[string]types.AttributeValue, error) {
	return s.query(ctx, "", attrPK, pk)
}

// QueryIndex runs the same flattened query against a named secondary index.
func (s *Store) QueryIndex(ctx context.Context, index, keyAttr, value string) ([]map[string]types.AttributeValue, error) {
	return s.query(ctx, index, keyAttr, value)
}

func (s *Store) query(ctx context.Context, index, keyAttr, value string) ([]map[string]types.AttributeValue, error) {
	var items []map[string]types.AttributeValue
	var startKey map[string]types.AttributeValue

	for {
		in := &dynamodb.QueryInput{
			TableName:              aws.String(s.table),
			KeyConditionExpression: aws.String("#k = :v"),
			ExpressionAttributeNames: map[string]string{
				"#k": keyAttr,
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":v": &types.AttributeValueMemberS{Value: value},
			},
			ExclusiveStartKey: startKey,
		}
		if index != "" {
			in.IndexName = aws.String(index)
		}

		start := time.Now()
		out, err := s.client.Query(ctx, in)
		observe("query", start, err)
		if err != nil {
			return nil, fmt.Errorf("dynamo query: %w", err)
		}

		items = append(items, out.Items...)
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	return items, nil
}

func keyAttrs(pk, sk string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrPK: &types.AttributeValueMemberS{Value: pk},
		attrSK: &types.AttributeValueMemberS{Value: sk},
	}
}

func observe(op string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.DynamoRequestsTotal.WithLabelValues(op, status).Inc()
	metrics.DynamoRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
