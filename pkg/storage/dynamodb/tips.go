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

const subjectTipsGSI = "subject_id-created_at-index"

// InsertTip appends a ledger row. The conditional put makes the reference the
// idempotency key at the storage engine: a second insert with the same
// reference fails the condition, with no read-before-write involved.
func (s *Store) InsertTip(ctx context.Context, tip *models.TipRecord) (*models.TipRecord, error) {
	tip.ID = uuid.New().String()
	tip.CreatedAt = time.Now()

	tipAV, err := attributevalue.MarshalMap(tip)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tip: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(s.TipsTableName),
		Item:                tipAV,
		ConditionExpression: aws.String("attribute_not_exists(#reference)"),
		ExpressionAttributeNames: map[string]string{
			"#reference": "reference",
		},
	}

	_, err = s.Client.PutItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return nil, storage.ErrDuplicateReference
		}
		return nil, fmt.Errorf("failed to put tip in DynamoDB: %w", err)
	}

	return tip, nil
}

// FindTipByReference retrieves a tip from DynamoDB by its on-chain reference.
func (s *Store) FindTipByReference(ctx context.Context, reference string) (*models.TipRecord, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"reference": reference})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tip reference: %w", err)
	}

	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.TipsTableName),
		Key:       key,
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get tip from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("tip with reference %s: %w", reference, storage.ErrTipNotFound)
	}

	var tip models.TipRecord
	if err := attributevalue.UnmarshalMap(result.Item, &tip); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tip: %w", err)
	}

	return &tip, nil
}

// ListTipsBySubject retrieves the most recent tips for a confession.
func (s *Store) ListTipsBySubject(ctx context.Context, subjectID string, limit int32) ([]models.TipRecord, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.TipsTableName),
		IndexName:              aws.String(subjectTipsGSI),
		KeyConditionExpression: aws.String("subject_id = :subjectID"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":subjectID": &types.AttributeValueMemberS{Value: subjectID},
		},
		ScanIndexForward: aws.Bool(false), // Sort by created_at in descending order
		Limit:            &limit,
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query tips by subject: %w", err)
	}

	var tips []models.TipRecord
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &tips); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tips: %w", err)
	}

	return tips, nil
}
