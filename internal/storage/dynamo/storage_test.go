package dynamo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/internal/storage"
)

// fakeAPI — таблица в памяти, ключ — строковый pk.
type fakeAPI struct {
	items  map[string]map[string]types.AttributeValue
	tables []string
	err    error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{items: map[string]map[string]types.AttributeValue{}}
}

func pkOf(m map[string]types.AttributeValue) string {
	if s, ok := m["pk"].(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func (f *fakeAPI) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tables = append(f.tables, aws.ToString(in.TableName))
	return &dynamodb.GetItemOutput{Item: f.items[pkOf(in.Key)]}, nil
}

func (f *fakeAPI) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tables = append(f.tables, aws.ToString(in.TableName))
	f.items[pkOf(in.Item)] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func TestStorage_MissingItem(t *testing.T) {
	cart, ok, err := NewStorage(newFakeAPI(), "carts", "").Load(context.Background())
	if err != nil || ok || cart != nil {
		t.Fatalf("want empty slot, got %v ok=%v err=%v", cart, ok, err)
	}
}

func TestStorage_SaveLoad(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	s := NewStorage(api, "carts", "")
	s.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	in := domain.Cart{{Product: domain.Product{ID: 9, Title: "t"}, Amount: 4}}
	if err := s.Save(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}

	item := api.items[storage.DefaultKey]
	if item == nil {
		t.Fatalf("item must be stored under default key")
	}
	if ts := item["updated_at"].(*types.AttributeValueMemberS).Value; ts != "2024-01-02T03:04:05Z" {
		t.Fatalf("unexpected updated_at: %s", ts)
	}

	got, ok, err := s.Load(ctx)
	if err != nil || !ok || len(got) != 1 || got[0].ID != 9 || got[0].Amount != 4 {
		t.Fatalf("unexpected load: %v ok=%v err=%v", got, ok, err)
	}
	for _, tbl := range api.tables {
		if tbl != "carts" {
			t.Fatalf("unexpected table %q", tbl)
		}
	}
}

func TestStorage_Errors(t *testing.T) {
	ctx := context.Background()

	api := newFakeAPI()
	api.err = errors.New("throttled")
	s := NewStorage(api, "carts", "k")
	if _, _, err := s.Load(ctx); !errors.Is(err, storage.ErrPersistence) {
		t.Fatalf("want ErrPersistence on get, got %v", err)
	}
	if err := s.Save(ctx, domain.Cart{}); !errors.Is(err, storage.ErrPersistence) {
		t.Fatalf("want ErrPersistence on put, got %v", err)
	}

	api = newFakeAPI()
	api.items["k"] = map[string]types.AttributeValue{
		"pk":      &types.AttributeValueMemberS{Value: "k"},
		"payload": &types.AttributeValueMemberS{Value: "[1,2"},
	}
	if _, ok, err := NewStorage(api, "carts", "k").Load(ctx); !ok || !errors.Is(err, storage.ErrPersistenceDecode) {
		t.Fatalf("want ErrPersistenceDecode, got ok=%v err=%v", ok, err)
	}
}
