package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/internal/storage"
)

func TestStorage_EmptySlot(t *testing.T) {
	cart, ok, err := NewStorage().Load(context.Background())
	if err != nil || ok || cart != nil {
		t.Fatalf("want empty slot, got cart=%v ok=%v err=%v", cart, ok, err)
	}
}

func TestStorage_SaveLoad(t *testing.T) {
	ctx := context.Background()
	s := NewStorage()
	in := domain.Cart{{Product: domain.Product{ID: 5, Title: "x"}, Amount: 2}}
	if err := s.Save(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}

	// мутация исходного среза не должна влиять на слот
	in[0].Amount = 99

	got, ok, err := s.Load(ctx)
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if len(got) != 1 || got[0].ID != 5 || got[0].Amount != 2 {
		t.Fatalf("unexpected cart: %+v", got)
	}

	raw, present := s.Raw()
	if !present || len(raw) == 0 {
		t.Fatalf("raw payload must be present")
	}
}

func TestStorage_SaveEmptyCart(t *testing.T) {
	ctx := context.Background()
	s := NewStorage()
	if err := s.Save(ctx, domain.Cart{}); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok, err := s.Load(ctx)
	if err != nil || !ok || got == nil || len(got) != 0 {
		t.Fatalf("want present empty cart, got %v ok=%v err=%v", got, ok, err)
	}
}

func TestStorage_MalformedPayload(t *testing.T) {
	s := NewStorageWithPayload([]byte(`{broken`))
	_, ok, err := s.Load(context.Background())
	if !ok || !errors.Is(err, storage.ErrPersistenceDecode) {
		t.Fatalf("want decode error, got ok=%v err=%v", ok, err)
	}
}
