// Package dynamo provides a pager that stores chunks as DynamoDB items.
//
// Each chunk is one item. The table needs a single string partition key:
//
//	aws dynamodb create-table \
//	  --table-name voxgo-chunks \
//	  --attribute-definitions AttributeName=chunk,AttributeType=S \
//	  --key-schema AttributeName=chunk,KeyType=HASH \
//	  --billing-mode PAY_PER_REQUEST
//
// DynamoDB items are limited to 400KB, so the volume's compressor must keep
// chunk payloads below that. Use a blob pager over S3 for larger chunks.
package dynamo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/hupe1980/voxgo/model"
	"github.com/hupe1980/voxgo/pager"
)

const (
	keyAttr  = "chunk"
	dataAttr = "data"
	// MaxItemSize is the DynamoDB item size limit.
	MaxItemSize = 400 * 1024
)

// ErrItemTooLarge is returned by PageOut when a payload cannot fit in one item.
var ErrItemTooLarge = errors.New("dynamo: chunk payload exceeds item size limit")

// DDBClient is the interface for DynamoDB operations.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// Pager implements pager.Pager on a DynamoDB table.
type Pager struct {
	client    DDBClient
	tableName string
	volume    string
}

var _ pager.Pager = (*Pager)(nil)

// New creates a pager. volume namespaces keys so several volumes can share
// one table; it may be empty.
func New(client DDBClient, tableName, volume string) *Pager {
	return &Pager{
		client:    client,
		tableName: tableName,
		volume:    volume,
	}
}

// NewFromConfig loads the default AWS configuration and creates a pager.
func NewFromConfig(ctx context.Context, tableName, volume string, optFns ...func(*config.LoadOptions) error) (*Pager, error) {
	cfg, err := config.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return nil, err
	}
	return New(dynamodb.NewFromConfig(cfg), tableName, volume), nil
}

func (p *Pager) key(r model.Region) map[string]types.AttributeValue {
	k := pager.Name(r)
	if p.volume != "" {
		k = p.volume + "/" + k
	}
	return map[string]types.AttributeValue{
		keyAttr: &types.AttributeValueMemberS{Value: k},
	}
}

// PageIn reads the chunk item. A missing item leaves h untouched.
func (p *Pager) PageIn(ctx context.Context, region model.Region, h pager.Handle) error {
	resp, err := p.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(p.tableName),
		Key:            p.key(region),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("dynamo: get item: %w", err)
	}
	if len(resp.Item) == 0 {
		return nil
	}

	attr, ok := resp.Item[dataAttr].(*types.AttributeValueMemberB)
	if !ok {
		return errors.New("dynamo: invalid data attribute")
	}
	h.SetCompressedData(attr.Value)
	return nil
}

// PageOut writes the chunk item, replacing any previous version.
func (p *Pager) PageOut(ctx context.Context, region model.Region, h pager.Handle) error {
	data := h.CompressedData()
	if len(data) > MaxItemSize-1024 {
		return ErrItemTooLarge
	}

	item := p.key(region)
	item[dataAttr] = &types.AttributeValueMemberB{Value: data}

	if _, err := p.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(p.tableName),
		Item:      item,
	}); err != nil {
		return fmt.Errorf("dynamo: put item: %w", err)
	}
	return nil
}

// Delete removes a stored chunk.
func (p *Pager) Delete(ctx context.Context, region model.Region) error {
	_, err := p.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(p.tableName),
		Key:       p.key(region),
	})
	return err
}
