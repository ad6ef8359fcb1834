package storage

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/tydonelson/ranked-choice/logging"
)

// BallotStorage appends ballots atomically; a ballot is either fully
// visible to GetByPoll or not at all.
type BallotStorage interface {
	Create(ctx context.Context, ballot *Ballot) error
	GetByPoll(ctx context.Context, pollID string) ([]*Ballot, error)
	DeleteByPoll(ctx context.Context, pollID string) (int, error)
}

type DynamoBallotStorage struct {
	Client    *dynamodb.Client
	TableName string
}

// DynamoDB caps BatchWriteItem at 25 requests.
const maxBatchWrite = 25

func (s *DynamoBallotStorage) Create(ctx context.Context, ballot *Ballot) error {
	item, err := attributevalue.MarshalMap(ballot)
	if err != nil {
		logging.Log.Errorf("BALLOT: failed to marshal ballot: %v", err)
		return err
	}
	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &s.TableName,
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
	})
	if err != nil {
		var cce *types.ConditionalCheckFailedException
		if errors.As(err, &cce) {
			logging.Log.Warnf("BALLOT: ballot %s already exists for poll %s", ballot.ID, ballot.PollID)
			return ErrItemWithIDAlreadyExists
		}
		logging.Log.Errorf("BALLOT: failed to create ballot: %v", err)
		return err
	}
	return nil
}

func (s *DynamoBallotStorage) GetByPoll(ctx context.Context, pollID string) ([]*Ballot, error) {
	ballots := make([]*Ballot, 0)
	var lastEvaluatedKey map[string]types.AttributeValue

	for {
		out, err := s.Client.Query(ctx, &dynamodb.QueryInput{
			TableName:              &s.TableName,
			KeyConditionExpression: aws.String("PK = :poll"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":poll": &types.AttributeValueMemberS{Value: pollID},
			},
			ConsistentRead:    aws.Bool(true),
			ExclusiveStartKey: lastEvaluatedKey,
		})
		if err != nil {
			logging.Log.Errorf("BALLOT: failed to query ballots for poll %s: %v", pollID, err)
			return nil, err
		}

		var page []*Ballot
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			logging.Log.Errorf("BALLOT: failed to unmarshal ballots for poll %s: %v", pollID, err)
			return nil, err
		}
		ballots = append(ballots, page...)

		if out.LastEvaluatedKey == nil {
			break
		}
		lastEvaluatedKey = out.LastEvaluatedKey
	}
	return ballots, nil
}

func (s *DynamoBallotStorage) DeleteByPoll(ctx context.Context, pollID string) (int, error) {
	deleted := 0
	var lastEvaluatedKey map[string]types.AttributeValue

	for {
		out, err := s.Client.Query(ctx, &dynamodb.QueryInput{
			TableName:              &s.TableName,
			KeyConditionExpression: aws.String("PK = :poll"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":poll": &types.AttributeValueMemberS{Value: pollID},
			},
			ProjectionExpression: aws.String("PK, SK"),
			ExclusiveStartKey:    lastEvaluatedKey,
		})
		if err != nil {
			logging.Log.Errorf("BALLOT: query for delete failed: %v", err)
			return deleted, err
		}

		var writeRequests []types.WriteRequest
		for _, item := range out.Items {
			writeRequests = append(writeRequests, types.WriteRequest{
				DeleteRequest: &types.DeleteRequest{
					Key: map[string]types.AttributeValue{
						"PK": item["PK"],
						"SK": item["SK"],
					},
				},
			})
		}

		for i := 0; i < len(writeRequests); i += maxBatchWrite {
			end := min(i+maxBatchWrite, len(writeRequests))
			requests := map[string][]types.WriteRequest{s.TableName: writeRequests[i:end]}
			for len(requests[s.TableName]) > 0 {
				res, err := s.Client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
					RequestItems: requests,
				})
				if err != nil {
					logging.Log.Errorf("BALLOT: batch delete failed: %v", err)
					return deleted, err
				}
				requests = res.UnprocessedItems
			}
			deleted += end - i
			logging.Log.Infof("BALLOT: deleted batch of %d ballots for poll %s", end-i, pollID)
		}

		if out.LastEvaluatedKey == nil {
			break
		}
		lastEvaluatedKey = out.LastEvaluatedKey
	}

	return deleted, nil
}
