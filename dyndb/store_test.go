// dyndb/store_test.go
package dyndb_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/raywall/retail-services/dyndb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func widgetKey() map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: "StoreItem"},
		"SK": &types.AttributeValueMemberS{Value: "widget"},
	}
}

func TestGet_Success(t *testing.T) {
	t.Parallel()

	mockClient := &MockDynamoClient{}
	store := createTestStore(mockClient)

	mockClient.On("GetItem", mock.Anything, &dynamodb.GetItemInput{
		TableName:      aws.String("test-table"),
		Key:            widgetKey(),
		ConsistentRead: aws.Bool(true),
	}).Return(&dynamodb.GetItemOutput{Item: map[string]types.AttributeValue{
		"PK":       &types.AttributeValueMemberS{Value: "StoreItem"},
		"SK":       &types.AttributeValueMemberS{Value: "widget"},
		"quantity": &types.AttributeValueMemberN{Value: "5"},
	}}, nil)

	item, err := store.Get(context.Background(), "StoreItem", "widget")

	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, "widget", item.SK)
	assert.Equal(t, int64(5), item.Quantity)
	mockClient.AssertExpectations(t)
}

func TestGet_NotFound(t *testing.T) {
	t.Parallel()

	mockClient := &MockDynamoClient{}
	store := createTestStore(mockClient)

	mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{}, nil)

	item, err := store.Get(context.Background(), "StoreItem", "ghost")

	assert.ErrorIs(t, err, dyndb.ErrNotFound)
	assert.Nil(t, item)
}

func TestGet_ClientError(t *testing.T) {
	t.Parallel()

	mockClient := &MockDynamoClient{}
	store := createTestStore(mockClient)

	throttled := errors.New("throttled")
	mockClient.On("GetItem", mock.Anything, mock.Anything).Return(nil, throttled)

	_, err := store.Get(context.Background(), "StoreItem", "widget")

	assert.ErrorIs(t, err, throttled)
	assert.NotErrorIs(t, err, dyndb.ErrNotFound)
}

func TestPut_MarshalsCompositeKey(t *testing.T) {
	t.Parallel()

	mockClient := &MockDynamoClient{}
	store := createTestStore(mockClient)

	mockClient.On("PutItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.PutItemInput) bool {
		qty, ok := in.Item["quantity"].(*types.AttributeValueMemberN)
		return *in.TableName == "test-table" &&
			in.Item["PK"].(*types.AttributeValueMemberS).Value == "StoreItem" &&
			in.Item["SK"].(*types.AttributeValueMemberS).Value == "widget" &&
			ok && qty.Value == "5" &&
			in.ConditionExpression == nil
	})).Return(&dynamodb.PutItemOutput{}, nil)

	err := store.Put(context.Background(), TestItem{PK: "StoreItem", SK: "widget", Quantity: 5})

	require.NoError(t, err)
	mockClient.AssertExpectations(t)
}

func TestPut_ClientError(t *testing.T) {
	t.Parallel()

	mockClient := &MockDynamoClient{}
	store := createTestStore(mockClient)

	mockClient.On("PutItem", mock.Anything, mock.Anything).Return(nil, errors.New("unreachable"))

	err := store.Put(context.Background(), TestItem{PK: "StoreItem", SK: "widget"})

	assert.ErrorContains(t, err, "dynamostore: put failed")
}

func TestAdd_BuildsAtomicUpdate(t *testing.T) {
	t.Parallel()

	mockClient := &MockDynamoClient{}
	store := createTestStore(mockClient)

	var captured *dynamodb.UpdateItemInput
	mockClient.On("UpdateItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.UpdateItemInput) bool {
		captured = in
		return true
	})).Return(&dynamodb.UpdateItemOutput{Attributes: map[string]types.AttributeValue{
		"PK":       &types.AttributeValueMemberS{Value: "StoreItem"},
		"SK":       &types.AttributeValueMemberS{Value: "widget"},
		"quantity": &types.AttributeValueMemberN{Value: "2"},
	}}, nil)

	item, err := store.Add(context.Background(), "StoreItem", "widget", "quantity", -3)

	require.NoError(t, err)
	assert.Equal(t, int64(2), item.Quantity)

	require.NotNil(t, captured)
	assert.Equal(t, "test-table", *captured.TableName)
	assert.Equal(t, widgetKey(), captured.Key)
	assert.Equal(t, types.ReturnValueAllNew, captured.ReturnValues)
	require.NotNil(t, captured.UpdateExpression)
	assert.Contains(t, *captured.UpdateExpression, "SET")
	require.NotNil(t, captured.ConditionExpression)
	assert.Contains(t, *captured.ConditionExpression, "attribute_exists")

	names := make([]string, 0, len(captured.ExpressionAttributeNames))
	for _, n := range captured.ExpressionAttributeNames {
		names = append(names, n)
	}
	assert.ElementsMatch(t, []string{"quantity", "PK"}, names)

	var delta string
	for _, v := range captured.ExpressionAttributeValues {
		if n, ok := v.(*types.AttributeValueMemberN); ok {
			delta = n.Value
		}
	}
	assert.Equal(t, "-3", delta)
}

func TestAdd_MissingItem(t *testing.T) {
	t.Parallel()

	mockClient := &MockDynamoClient{}
	store := createTestStore(mockClient)

	mockClient.On("UpdateItem", mock.Anything, mock.Anything).
		Return(nil, &types.ConditionalCheckFailedException{Message: aws.String("conditional request failed")})

	item, err := store.Add(context.Background(), "StoreItem", "ghost", "quantity", -1)

	assert.ErrorIs(t, err, dyndb.ErrNotFound)
	assert.Nil(t, item)
}

func TestAdd_NoAttributesReturned(t *testing.T) {
	t.Parallel()

	mockClient := &MockDynamoClient{}
	store := createTestStore(mockClient)

	mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(&dynamodb.UpdateItemOutput{}, nil)

	_, err := store.Add(context.Background(), "StoreItem", "widget", "quantity", -1)

	assert.ErrorIs(t, err, dyndb.ErrNoAttributes)
}

func TestAdd_ClientError(t *testing.T) {
	t.Parallel()

	mockClient := &MockDynamoClient{}
	store := createTestStore(mockClient)

	mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, errors.New("throttled"))

	_, err := store.Add(context.Background(), "StoreItem", "widget", "quantity", -1)

	assert.ErrorContains(t, err, "dynamostore: update failed")
	assert.NotErrorIs(t, err, dyndb.ErrNotFound)
}

func TestMockDynamoClient_FnFields(t *testing.T) {
	t.Parallel()

	client := &dyndb.MockDynamoClient{
		UpdateItemFn: func(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
			return &dynamodb.UpdateItemOutput{Attributes: map[string]types.AttributeValue{
				"quantity": &types.AttributeValueMemberN{Value: "-1"},
			}}, nil
		},
	}
	store := dyndb.New(client, testConfig())

	_, err := store.Get(context.Background(), "StoreItem", "widget")
	assert.ErrorIs(t, err, dyndb.ErrNotFound)

	item, err := store.Add(context.Background(), "StoreItem", "widget", "quantity", -6)
	require.NoError(t, err)
	assert.Equal(t, int64(-1), item.Quantity)
}
