package storage

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/shopspring/decimal"
)

func TestEncode_NilIsEmptyArray(t *testing.T) {
	raw, err := Encode(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(raw) != "[]" {
		t.Fatalf("want [] got %s", raw)
	}
}

func TestEncodeDecode_KeepsOrderAndFields(t *testing.T) {
	cart := domain.Cart{
		{Product: domain.Product{ID: 3, Title: "Tênis Adidas", Price: decimal.RequireFromString("219.9"), Image: "a.jpg"}, Amount: 2},
		{Product: domain.Product{ID: 1, Title: "Tênis Nike", Price: decimal.RequireFromString("179.9"), Image: "b.jpg"}, Amount: 1},
	}
	raw, err := Encode(cart)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := Decode(context.Background(), raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 || got[0].ID != 3 || got[1].ID != 1 || got[0].Amount != 2 || got[1].Image != "b.jpg" {
		t.Fatalf("unexpected cart: %+v", got)
	}
	if !got[0].Price.Equal(cart[0].Price) {
		t.Fatalf("price mismatch: %s", got[0].Price)
	}
}

func TestDecode_Malformed(t *testing.T) {
	for _, raw := range []string{`not json`, `{"id":1}`, `[{"id":1,"amount":0}]`, `[{"id":1,"amount":1},{"id":1,"amount":1}]`} {
		if _, err := Decode(context.Background(), []byte(raw)); !errors.Is(err, ErrPersistenceDecode) {
			t.Fatalf("%s: want ErrPersistenceDecode, got %v", raw, err)
		}
	}
}

func TestWrap(t *testing.T) {
	if Wrap("save", nil) != nil {
		t.Fatalf("nil must stay nil")
	}
	base := errors.New("boom")
	err := Wrap("save", base)
	if !errors.Is(err, ErrPersistence) || !errors.Is(err, base) {
		t.Fatalf("wrap must keep both errors: %v", err)
	}
}

func TestEncode_PriceIsNumberAndExtraKept(t *testing.T) {
	raw := []byte(`[{"id":5,"title":"Tenis","price":139.9,"image":"a.jpg","brand":"Nike","amount":2}]`)
	cart, err := Decode(context.Background(), raw)
	if err != nil {
		t.Fatalf("snapshot with extra product fields must decode: %v", err)
	}
	out, err := Encode(cart)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var got, want []map[string]any
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	_ = json.Unmarshal(raw, &want)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip changed snapshot:\n got  %s\n want %s", out, raw)
	}
}
