package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

type dynamoAPI interface {
	PutItem(context.Context, *dynamodb.PutItemInput, ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	ListTables(context.Context, *dynamodb.ListTablesInput, ...func(*dynamodb.Options)) (*dynamodb.ListTablesOutput, error)
}

// DynamoStore maps each collection to its own table named prefix+collection,
// keyed by the string attribute "id".
type DynamoStore struct {
	client dynamoAPI
	prefix string
}

// NewDynamoStore builds a store backed by the provided DynamoDB client.
func NewDynamoStore(client dynamoAPI, tablePrefix string) *DynamoStore {
	if client == nil {
		panic("storage: dynamodb client cannot be nil")
	}
	return &DynamoStore{client: client, prefix: tablePrefix}
}

func (s *DynamoStore) tableName(collection Collection) string {
	return s.prefix + string(collection)
}

// Insert puts doc under a fresh uuid.
func (s *DynamoStore) Insert(ctx context.Context, collection Collection, doc Document) (_ string, err error) {
	if err := checkInsert(collection, doc); err != nil {
		return "", err
	}
	ctx, span := startSpan(ctx, DriverDynamo, "insert", collection)
	defer func() { endSpan(span, err) }()

	item, err := attributevalue.MarshalMap(map[string]any(doc))
	if err != nil {
		return "", fmt.Errorf("storage: failed to marshal document: %w", err)
	}
	id := uuid.NewString()
	item["id"] = &types.AttributeValueMemberS{Value: id}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.tableName(collection)),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		return "", fmt.Errorf("storage: failed to persist document: %w", err)
	}
	return id, nil
}

// ListCollectionNames pages through ListTables and keeps the tables that
// carry this store's prefix.
func (s *DynamoStore) ListCollectionNames(ctx context.Context) (_ []string, err error) {
	ctx, span := startSpan(ctx, DriverDynamo, "list_collections", "")
	defer func() { endSpan(span, err) }()

	names := []string{}
	input := &dynamodb.ListTablesInput{}
	for {
		out, err := s.client.ListTables(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("storage: failed to list tables: %w", err)
		}
		for _, table := range out.TableNames {
			if !strings.HasPrefix(table, s.prefix) {
				continue
			}
			if name := strings.TrimPrefix(table, s.prefix); name != "" {
				names = append(names, name)
			}
		}
		if out.LastEvaluatedTableName == nil {
			break
		}
		input = &dynamodb.ListTablesInput{ExclusiveStartTableName: out.LastEvaluatedTableName}
	}
	sort.Strings(names)
	return names, nil
}
