package storage

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	dynamodbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"github.com/beast-watch/api-go/apperrors"
	"github.com/beast-watch/api-go/models"
)

// DynamoAPI is the subset of the DynamoDB client used by DynamoStore.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// DynamoStore keeps master and published sightings in two DynamoDB tables
// keyed by "id". Transactions read master items with strong consistency and
// commit every write in one TransactWriteItems call, guarded by the master
// item's version. A version mismatch cancels the commit and the whole
// transaction body is retried.
type DynamoStore struct {
	client         DynamoAPI
	masterTable    string
	publishedTable string
	maxAttempts    uint
	logger         *zap.Logger
}

var _ Store = (*DynamoStore)(nil)

// DynamoOption configures a DynamoStore.
type DynamoOption func(*DynamoStore)

// WithDynamoMaxAttempts sets how many times a conflicting transaction is tried.
func WithDynamoMaxAttempts(n uint) DynamoOption {
	return func(s *DynamoStore) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithDynamoLogger sets the logger used for retry diagnostics.
func WithDynamoLogger(logger *zap.Logger) DynamoOption {
	return func(s *DynamoStore) {
		s.logger = logger
	}
}

// NewDynamoStore creates a DynamoStore on the given tables.
func NewDynamoStore(client DynamoAPI, masterTable, publishedTable string, opts ...DynamoOption) *DynamoStore {
	s := &DynamoStore{
		client:         client,
		masterTable:    masterTable,
		publishedTable: publishedTable,
		maxAttempts:    defaultMaxAttempts,
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func idKey(id string) map[string]dynamodbtypes.AttributeValue {
	return map[string]dynamodbtypes.AttributeValue{
		"id": &dynamodbtypes.AttributeValueMemberS{Value: id},
	}
}

func (s *DynamoStore) InsertMaster(ctx context.Context, sighting *models.Sighting) error {
	if s.client == nil {
		return fmt.Errorf("DynamoDB client not initialized")
	}

	item, err := attributevalue.MarshalMap(sighting)
	if err != nil {
		return fmt.Errorf("failed to marshal sighting: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.masterTable),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		return translateDynamoError(err)
	}
	return nil
}

func (s *DynamoStore) ListMaster(ctx context.Context) ([]models.Sighting, error) {
	var sightings []models.Sighting
	if err := s.scanAll(ctx, s.masterTable, func(item map[string]dynamodbtypes.AttributeValue) error {
		var sighting models.Sighting
		if err := attributevalue.UnmarshalMap(item, &sighting); err != nil {
			return err
		}
		sightings = append(sightings, sighting)
		return nil
	}); err != nil {
		return nil, err
	}

	slices.SortStableFunc(sightings, func(a, b models.Sighting) int {
		return b.SightedAt.Compare(a.SightedAt)
	})
	return sightings, nil
}

func (s *DynamoStore) ListPublished(ctx context.Context) ([]models.PublishedSighting, error) {
	var sightings []models.PublishedSighting
	if err := s.scanAll(ctx, s.publishedTable, func(item map[string]dynamodbtypes.AttributeValue) error {
		var sighting models.PublishedSighting
		if err := attributevalue.UnmarshalMap(item, &sighting); err != nil {
			return err
		}
		sightings = append(sightings, sighting)
		return nil
	}); err != nil {
		return nil, err
	}

	slices.SortStableFunc(sightings, func(a, b models.PublishedSighting) int {
		return b.SightedAt.Compare(a.SightedAt)
	})
	return sightings, nil
}

func (s *DynamoStore) scanAll(
	ctx context.Context,
	table string,
	visit func(map[string]dynamodbtypes.AttributeValue) error,
) error {
	if s.client == nil {
		return fmt.Errorf("DynamoDB client not initialized")
	}

	var lastEvaluatedKey map[string]dynamodbtypes.AttributeValue
	for {
		input := &dynamodb.ScanInput{
			TableName:      aws.String(table),
			ConsistentRead: aws.Bool(true),
		}
		if lastEvaluatedKey != nil {
			input.ExclusiveStartKey = lastEvaluatedKey
		}

		result, err := s.client.Scan(ctx, input)
		if err != nil {
			return translateDynamoError(err)
		}

		for _, item := range result.Items {
			if err := visit(item); err != nil {
				return fmt.Errorf("failed to unmarshal item from %s: %w", table, err)
			}
		}

		lastEvaluatedKey = result.LastEvaluatedKey
		if len(lastEvaluatedKey) == 0 {
			return nil
		}
	}
}

func (s *DynamoStore) RunInTransaction(ctx context.Context, fn TxFunc) error {
	if s.client == nil {
		return fmt.Errorf("DynamoDB client not initialized")
	}

	attempt := 0
	err := retryConflicts(ctx, s.maxAttempts, isTransactionConflict, func() error {
		attempt++
		if attempt > 1 {
			s.logger.Debug("retrying sighting transaction", zap.Int("attempt", attempt))
		}

		tx := &dynamoTx{store: s, readVersions: map[string]int64{}}
		if err := fn(ctx, tx); err != nil {
			return err
		}
		return tx.commit(ctx)
	})
	return translateDynamoError(err)
}

type dynamoTx struct {
	store        *DynamoStore
	readVersions map[string]int64
	writes       []dynamodbtypes.TransactWriteItem
}

func (t *dynamoTx) GetMaster(ctx context.Context, id string) (*models.Sighting, error) {
	result, err := t.store.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(t.store.masterTable),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if result.Item == nil {
		return nil, apperrors.ErrSightingNotFound
	}

	var sighting models.Sighting
	if err := attributevalue.UnmarshalMap(result.Item, &sighting); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sighting: %w", err)
	}
	t.readVersions[id] = sighting.Version
	return &sighting, nil
}

func (t *dynamoTx) PutMaster(_ context.Context, sighting *models.Sighting) error {
	expected, ok := t.readVersions[sighting.ID]
	if !ok {
		return fmt.Errorf("sighting %s must be read before it is written", sighting.ID)
	}
	sighting.Version = expected + 1

	item, err := attributevalue.MarshalMap(sighting)
	if err != nil {
		return fmt.Errorf("failed to marshal sighting: %w", err)
	}

	t.writes = append(t.writes, dynamodbtypes.TransactWriteItem{
		Put: &dynamodbtypes.Put{
			TableName:                aws.String(t.store.masterTable),
			Item:                     item,
			ConditionExpression:      aws.String("#version = :expected"),
			ExpressionAttributeNames: map[string]string{"#version": "version"},
			ExpressionAttributeValues: map[string]dynamodbtypes.AttributeValue{
				":expected": &dynamodbtypes.AttributeValueMemberN{Value: strconv.FormatInt(expected, 10)},
			},
		},
	})
	return nil
}

func (t *dynamoTx) PutPublished(_ context.Context, published *models.PublishedSighting) error {
	item, err := attributevalue.MarshalMap(published)
	if err != nil {
		return fmt.Errorf("failed to marshal published sighting: %w", err)
	}

	t.writes = append(t.writes, dynamodbtypes.TransactWriteItem{
		Put: &dynamodbtypes.Put{
			TableName: aws.String(t.store.publishedTable),
			Item:      item,
		},
	})
	return nil
}

func (t *dynamoTx) DeletePublished(_ context.Context, id string) error {
	t.writes = append(t.writes, dynamodbtypes.TransactWriteItem{
		Delete: &dynamodbtypes.Delete{
			TableName: aws.String(t.store.publishedTable),
			Key:       idKey(id),
		},
	})
	return nil
}

func (t *dynamoTx) commit(ctx context.Context) error {
	if len(t.writes) == 0 {
		return nil
	}
	_, err := t.store.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: t.writes,
	})
	return err
}

// isTransactionConflict reports whether a commit lost a race with another writer.
func isTransactionConflict(err error) bool {
	var conflict *dynamodbtypes.TransactionConflictException
	if errors.As(err, &conflict) {
		return true
	}

	var canceled *dynamodbtypes.TransactionCanceledException
	if !errors.As(err, &canceled) {
		return false
	}
	for _, reason := range canceled.CancellationReasons {
		switch aws.ToString(reason.Code) {
		case "ConditionalCheckFailed", "TransactionConflict":
			return true
		}
	}
	return false
}
