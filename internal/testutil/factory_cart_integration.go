//go:build integration

package testutil

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Gunvolt24/wb_cart/internal/domain"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

// UniqProductID — положительный случайный id товара.
func UniqProductID() domain.ProductID {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return domain.ProductID(binary.BigEndian.Uint32(b)>>1) + 1
}

// Мини-генератор карточки товара
func MakeProduct(id domain.ProductID) domain.Product {
	return domain.Product{
		ID:    id,
		Title: "Tênis " + UniqSuffix(),
		Price: decimal.NewFromFloat(139.9),
		Image: fmt.Sprintf("https://cdn.example.com/%d.jpg", id),
	}
}

// MakeCart — валидная корзина из n позиций с уникальными id.
func MakeCart(n int) domain.Cart {
	cart := make(domain.Cart, 0, n)
	for i := 0; i < n; i++ {
		cart = append(cart, domain.LineItem{
			Product: MakeProduct(domain.ProductID(i + 1)),
			Amount:  i + 1,
		})
	}
	return cart
}
