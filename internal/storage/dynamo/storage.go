// Package dynamo — слот корзины в таблице DynamoDB (aws-sdk-go-v2).
package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/internal/ports"
	"github.com/Gunvolt24/wb_cart/internal/storage"
)

var _ ports.CartStorage = (*Storage)(nil)

// api — подмножество *dynamodb.Client.
type api interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// snapshotItem — запись слота: pk = имя слота, payload = JSON корзины.
type snapshotItem struct {
	PK        string `dynamodbav:"pk"`
	Payload   string `dynamodbav:"payload"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

// Storage — реализация ports.CartStorage на DynamoDB.
type Storage struct {
	client api
	table  string
	key    string
	now    func() time.Time
}

// NewStorage — конструктор Storage.
func NewStorage(client api, table, key string) *Storage {
	if key == "" {
		key = storage.DefaultKey
	}
	return &Storage{client: client, table: table, key: key, now: time.Now}
}

func (s *Storage) Load(ctx context.Context) (domain.Cart, bool, error) {
	keyAttr, err := attributevalue.MarshalMap(map[string]string{"pk": s.key})
	if err != nil {
		return nil, false, storage.Wrap("marshal key", err)
	}
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.table),
		Key:            keyAttr,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, false, storage.Wrap("get item", err)
	}
	if out.Item == nil {
		return nil, false, nil
	}

	var item snapshotItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, true, fmt.Errorf("%w: unmarshal item: %w", storage.ErrPersistenceDecode, err)
	}
	cart, err := storage.Decode(ctx, []byte(item.Payload))
	if err != nil {
		return nil, true, err
	}
	return cart, true, nil
}

func (s *Storage) Save(ctx context.Context, cart domain.Cart) error {
	raw, err := storage.Encode(cart)
	if err != nil {
		return err
	}
	item, err := attributevalue.MarshalMap(snapshotItem{
		PK:        s.key,
		Payload:   string(raw),
		UpdatedAt: s.now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return storage.Wrap("marshal item", err)
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	return storage.Wrap("put item", err)
}

// NewClient — клиент DynamoDB из стандартной цепочки AWS-конфигурации.
// endpoint переопределяет адрес (DynamoDB Local, LocalStack).
func NewClient(ctx context.Context, region, endpoint string) (*dynamodb.Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	}), nil
}
