package validate

import (
	"context"
	"errors"
	"strings"
	"testing"
)

const validCartJSON = `[
	{"id": 1, "title": "Tênis de Caminhada", "price": 179.9, "image": "https://img/1.jpg", "amount": 2},
	{"id": 3, "title": "Tênis Adidas", "price": "219.9", "image": "https://img/3.jpg", "amount": 1}
]`

func TestCartFromJSON_OK(t *testing.T) {
	cart, err := CartFromJSON(context.Background(), NewCartValidator(), []byte(validCartJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart) != 2 || cart[0].ID != 1 || cart[0].Amount != 2 || cart[1].Title != "Tênis Adidas" {
		t.Fatalf("unexpected cart: %+v", cart)
	}
	if cart[0].Price.String() != "179.9" {
		t.Fatalf("price must survive decoding, got %s", cart[0].Price)
	}
}

func TestCartFromJSON_KeepsExtraProductFields(t *testing.T) {
	raw := `[{"id":5,"title":"Tenis","price":139.9,"image":"a.jpg","brand":"Nike","sizes":[40,41],"amount":2}]`
	cart, err := CartFromJSON(context.Background(), NewCartValidator(), []byte(raw))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart) != 1 || cart[0].Amount != 2 {
		t.Fatalf("unexpected cart: %+v", cart)
	}
	if got := string(cart[0].Extra["brand"]); got != `"Nike"` {
		t.Fatalf("brand must be kept, got %q", got)
	}
	if _, ok := cart[0].Extra["amount"]; ok {
		t.Fatalf("amount must not leak into Extra")
	}
}

func TestCartFromJSON_EmptyArray(t *testing.T) {
	cart, err := CartFromJSON(context.Background(), NewCartValidator(), []byte(`[]`))
	if err != nil || cart == nil || len(cart) != 0 {
		t.Fatalf("want empty non-nil cart, got %v err=%v", cart, err)
	}
}

func TestCartFromJSON_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"broken", `[{"id":1`, "invalid json"},
		{"object_instead_of_array", `{"id":1}`, "invalid json"},
		{"trailing", `[]{}`, "trailing data"},
		{"invalid_amount", `[{"id":1,"amount":0}]`, "amount"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CartFromJSON(context.Background(), NewCartValidator(), []byte(tt.raw))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("want error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestProductEventFromJSON(t *testing.T) {
	ev, err := ProductEventFromJSON([]byte(`{"id": 7, "type": "updated"}`))
	if err != nil || ev.ID != 7 || ev.Type != "updated" {
		t.Fatalf("unexpected result: %+v err=%v", ev, err)
	}

	for _, raw := range []string{`{`, `{"id":7,"type":"updated","x":1}`, `{"id":7,"type":"moved"}`} {
		if _, err := ProductEventFromJSON([]byte(raw)); !errors.Is(err, ErrInvalidEvent) {
			t.Fatalf("%s: want ErrInvalidEvent, got %v", raw, err)
		}
	}
}
