package validate_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/pkg/validate"
	"github.com/shopspring/decimal"
)

func item(id domain.ProductID, amount int, price string) domain.LineItem {
	return domain.LineItem{
		Product: domain.Product{ID: id, Title: "Tênis", Price: decimal.RequireFromString(price)},
		Amount:  amount,
	}
}

func TestCartValidator_Validate(t *testing.T) {
	v := validate.NewCartValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		cart    domain.Cart
		wantErr string
	}{
		{"empty", domain.Cart{}, ""},
		{"nil", nil, ""},
		{"valid", domain.Cart{item(1, 1, "139.9"), item(2, 3, "0")}, ""},
		{"zero_id", domain.Cart{item(0, 1, "1")}, "id должен быть положительным"},
		{"zero_amount", domain.Cart{item(1, 0, "1")}, "amount должен быть >= 1"},
		{"negative_amount", domain.Cart{item(1, -2, "1")}, "amount должен быть >= 1"},
		{"negative_price", domain.Cart{item(1, 1, "-0.01")}, "price должен быть неотрицательным"},
		{"duplicate_id", domain.Cart{item(5, 1, "1"), item(5, 2, "1")}, "повторяющийся id=5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, tt.cart)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected valid cart, got: %v", err)
				}
				return
			}
			if !errors.Is(err, validate.ErrInvalidCart) {
				t.Fatalf("want ErrInvalidCart, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error %q must contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateProductEvent(t *testing.T) {
	tests := []struct {
		name string
		ev   domain.ProductEvent
		ok   bool
	}{
		{"updated", domain.ProductEvent{ID: 1, Type: domain.ProductUpdated}, true},
		{"deleted", domain.ProductEvent{ID: 2, Type: domain.ProductDeleted}, true},
		{"bad_id", domain.ProductEvent{ID: 0, Type: domain.ProductUpdated}, false},
		{"bad_type", domain.ProductEvent{ID: 1, Type: "created"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.ValidateProductEvent(tt.ev)
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, validate.ErrInvalidEvent) {
				t.Fatalf("want ErrInvalidEvent, got %v", err)
			}
		})
	}
}
