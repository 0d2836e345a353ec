package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/BURAK1289/confession-tip/pkg/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	payerTipsGSI = "payer_address-created_at-index"
	ownerTipsGSI = "owner_address-created_at-index"
)

// sumTips pages through one tips index and totals the rows where keyAttr
// equals value. The ledger is append-only, so a sum over it is stable within
// a sweep.
func (s *Store) sumTips(ctx context.Context, indexName, keyAttr, value string) (int64, int64, error) {
	var total, count int64
	var startKey map[string]types.AttributeValue

	for {
		input := &dynamodb.QueryInput{
			TableName:              aws.String(s.TipsTableName),
			IndexName:              aws.String(indexName),
			KeyConditionExpression: aws.String("#k = :v"),
			ExpressionAttributeNames: map[string]string{
				"#k": keyAttr,
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":v": &types.AttributeValueMemberS{Value: value},
			},
			ProjectionExpression: aws.String("amount_micro"),
			ExclusiveStartKey:    startKey,
		}

		result, err := s.Client.Query(ctx, input)
		if err != nil {
			return 0, 0, fmt.Errorf("failed to query tips for %s=%s: %w", keyAttr, value, err)
		}

		var rows []models.TipRecord
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &rows); err != nil {
			return 0, 0, fmt.Errorf("failed to unmarshal tips: %w", err)
		}
		for _, row := range rows {
			total += row.AmountMicro
			count++
		}

		if result.LastEvaluatedKey == nil {
			return total, count, nil
		}
		startKey = result.LastEvaluatedKey
	}
}

// RecomputeSubjectAggregates re-derives a confession's counters from the
// ledger and corrects them. The correction is guarded by the counter values
// the sum was compared against, so a tip admitted mid-recompute fails the
// condition and the next pass settles it.
func (s *Store) RecomputeSubjectAggregates(ctx context.Context, subjectID string) (bool, error) {
	confession, err := s.GetConfession(ctx, subjectID)
	if err != nil {
		return false, fmt.Errorf("failed to load confession for recompute: %w", err)
	}

	total, count, err := s.sumTips(ctx, subjectTipsGSI, "subject_id", subjectID)
	if err != nil {
		return false, err
	}

	if confession.TotalTipsMicro == total && confession.TipCount == count {
		return false, nil
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.ConfessionsTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: subjectID},
		},
		UpdateExpression:    aws.String("SET total_tips_micro = :total, tip_count = :tip_count"),
		ConditionExpression: aws.String("total_tips_micro = :seen_total AND tip_count = :seen_count"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":total":      &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", total)},
			":tip_count":  &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", count)},
			":seen_total": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", confession.TotalTipsMicro)},
			":seen_count": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", confession.TipCount)},
		},
	}

	_, err = s.Client.UpdateItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return false, nil
		}
		return false, fmt.Errorf("failed to correct confession aggregates: %w", err)
	}

	return true, nil
}

// RecomputeUserAggregates re-derives an address's given and received totals
// from the ledger, creating the stats row if it is missing.
func (s *Store) RecomputeUserAggregates(ctx context.Context, address string) (bool, error) {
	user, err := s.EnsureUser(ctx, address)
	if err != nil {
		return false, fmt.Errorf("failed to load user stats for recompute: %w", err)
	}

	given, _, err := s.sumTips(ctx, payerTipsGSI, "payer_address", user.Address)
	if err != nil {
		return false, err
	}
	received, _, err := s.sumTips(ctx, ownerTipsGSI, "owner_address", user.Address)
	if err != nil {
		return false, err
	}

	if user.TotalTipsGivenMicro == given && user.TotalTipsReceivedMicro == received {
		return false, nil
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.UsersTableName),
		Key: map[string]types.AttributeValue{
			"address": &types.AttributeValueMemberS{Value: user.Address},
		},
		UpdateExpression:    aws.String("SET total_tips_given_micro = :given, total_tips_received_micro = :received"),
		ConditionExpression: aws.String("total_tips_given_micro = :seen_given AND total_tips_received_micro = :seen_received"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":given":         &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", given)},
			":received":      &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", received)},
			":seen_given":    &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", user.TotalTipsGivenMicro)},
			":seen_received": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", user.TotalTipsReceivedMicro)},
		},
	}

	_, err = s.Client.UpdateItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return false, nil
		}
		return false, fmt.Errorf("failed to correct user aggregates: %w", err)
	}

	return true, nil
}

// ScanConfessions pages through the confessions table. The page token is the
// last confession id of the previous page.
func (s *Store) ScanConfessions(ctx context.Context, pageToken string) ([]models.Confession, string, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(s.ConfessionsTableName),
	}
	if pageToken != "" {
		input.ExclusiveStartKey = map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: pageToken},
		}
	}

	result, err := s.Client.Scan(ctx, input)
	if err != nil {
		return nil, "", fmt.Errorf("failed to scan confessions table: %w", err)
	}

	var confessions []models.Confession
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &confessions); err != nil {
		return nil, "", fmt.Errorf("failed to unmarshal confessions: %w", err)
	}

	var next string
	if key, ok := result.LastEvaluatedKey["id"]; ok {
		if id, ok := key.(*types.AttributeValueMemberS); ok {
			next = id.Value
		}
	}

	return confessions, next, nil
}
