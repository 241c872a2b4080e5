package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDynamo struct {
	puts   []*dynamodb.PutItemInput
	pages  []*dynamodb.ListTablesOutput
	calls  int
	putErr error
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	f.puts = append(f.puts, in)
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) ListTables(_ context.Context, _ *dynamodb.ListTablesInput, _ ...func(*dynamodb.Options)) (*dynamodb.ListTablesOutput, error) {
	if f.calls >= len(f.pages) {
		return &dynamodb.ListTablesOutput{}, nil
	}
	page := f.pages[f.calls]
	f.calls++
	return page, nil
}

func TestDynamoStoreInsert(t *testing.T) {
	fake := &fakeDynamo{}
	store := NewDynamoStore(fake, "ytre_")

	id, err := store.Insert(context.Background(), CollectionLead, Document{"name": "Jane", "email": "jane@example.com"})
	require.NoError(t, err)
	require.Len(t, fake.puts, 1)

	put := fake.puts[0]
	assert.Equal(t, "ytre_lead", aws.ToString(put.TableName))
	idAttr, ok := put.Item["id"].(*types.AttributeValueMemberS)
	require.True(t, ok, "expected string id attribute")
	assert.Equal(t, id, idAttr.Value)
	nameAttr, ok := put.Item["name"].(*types.AttributeValueMemberS)
	require.True(t, ok, "expected string name attribute")
	assert.Equal(t, "Jane", nameAttr.Value)
}

func TestDynamoStoreInsertError(t *testing.T) {
	boom := errors.New("throttled")
	store := NewDynamoStore(&fakeDynamo{putErr: boom}, "")

	_, err := store.Insert(context.Background(), CollectionLead, Document{"name": "Jane"})
	assert.ErrorIs(t, err, boom)
}

func TestDynamoStoreListCollectionNamesPaginates(t *testing.T) {
	fake := &fakeDynamo{pages: []*dynamodb.ListTablesOutput{
		{TableNames: []string{"other_table", "ytre_lead"}, LastEvaluatedTableName: aws.String("ytre_lead")},
		{TableNames: []string{"ytre_archive"}},
	}}
	store := NewDynamoStore(fake, "ytre_")

	names, err := store.ListCollectionNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"archive", "lead"}, names)
	assert.Equal(t, 2, fake.calls)
}
