package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BURAK1289/confession-tip/pkg/models"
	"github.com/BURAK1289/confession-tip/pkg/storage"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// Both listing indexes share the constant gsi1pk so the whole table can be
// queried in sorted order, the recency index by created_at and the
// leaderboard index by total_tips_micro.
const (
	recentConfessionsGSI = "gsi1pk-created_at-index"
	topConfessionsGSI    = "gsi1pk-total_tips_micro-index"
)

// CreateConfession creates a new confession record in DynamoDB.
func (s *Store) CreateConfession(ctx context.Context, confession *models.Confession) (*models.Confession, error) {
	confession.ID = uuid.New().String()
	confession.CreatedAt = time.Now()
	confession.GSI1PK = models.ConfessionGSI1PK
	confession.TotalTipsMicro = 0
	confession.TipCount = 0

	confessionAV, err := attributevalue.MarshalMap(confession)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal confession: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(s.ConfessionsTableName),
		Item:                confessionAV,
		ConditionExpression: aws.String("attribute_not_exists(id)"), // Prevent overwriting existing confessions.
	}

	_, err = s.Client.PutItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return nil, fmt.Errorf("confession with ID %s already exists", confession.ID)
		}
		return nil, fmt.Errorf("failed to create confession in DynamoDB: %w", err)
	}

	return confession, nil
}

// GetConfession retrieves a confession from DynamoDB by its ID.
func (s *Store) GetConfession(ctx context.Context, id string) (*models.Confession, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal confession ID: %w", err)
	}

	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.ConfessionsTableName),
		Key:       key,
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get confession from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("confession with ID %s: %w", id, storage.ErrConfessionNotFound)
	}

	var confession models.Confession
	if err := attributevalue.UnmarshalMap(result.Item, &confession); err != nil {
		return nil, fmt.Errorf("failed to unmarshal confession: %w", err)
	}

	return &confession, nil
}

// ListRecentConfessions retrieves the newest confessions.
func (s *Store) ListRecentConfessions(ctx context.Context, limit int32) ([]models.Confession, error) {
	return s.listConfessions(ctx, recentConfessionsGSI, limit)
}

// ListTopConfessions retrieves the most tipped confessions.
func (s *Store) ListTopConfessions(ctx context.Context, limit int32) ([]models.Confession, error) {
	return s.listConfessions(ctx, topConfessionsGSI, limit)
}

func (s *Store) listConfessions(ctx context.Context, indexName string, limit int32) ([]models.Confession, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.ConfessionsTableName),
		IndexName:              aws.String(indexName),
		KeyConditionExpression: aws.String("gsi1pk = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: models.ConfessionGSI1PK},
		},
		ScanIndexForward: aws.Bool(false), // Sort by the range key in descending order
		Limit:            &limit,
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query confessions on %s: %w", indexName, err)
	}

	var confessions []models.Confession
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &confessions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal confessions: %w", err)
	}

	return confessions, nil
}

// IncrementConfessionTips atomically adds one tip to the confession's
// counters. ADD is a server-side read-modify-write, so concurrent tips never
// lose an update.
func (s *Store) IncrementConfessionTips(ctx context.Context, id string, amountMicro int64) error {
	amountAV, err := attributevalue.Marshal(amountMicro)
	if err != nil {
		return fmt.Errorf("failed to marshal amount: %w", err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.ConfessionsTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		UpdateExpression:    aws.String("ADD total_tips_micro :amount, tip_count :one"),
		ConditionExpression: aws.String("attribute_exists(id)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":amount": amountAV,
			":one":    &types.AttributeValueMemberN{Value: "1"},
		},
	}

	_, err = s.Client.UpdateItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return fmt.Errorf("confession with ID %s: %w", id, storage.ErrConfessionNotFound)
		}
		return fmt.Errorf("failed to increment confession counters: %w", err)
	}

	return nil
}
