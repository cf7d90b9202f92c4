package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/internal/ports/mocks"
	"github.com/Gunvolt24/wb_cart/internal/usecase"
	"github.com/Gunvolt24/wb_cart/pkg/validate"
)

func TestHandleProductEvent_Invalidates(t *testing.T) {
	ctrl := gomock.NewController(t)
	inv := mocks.NewMockProductInvalidator(ctrl)
	inv.EXPECT().Invalidate(gomock.Any(), domain.ProductID(42)).Return(nil)

	h := usecase.NewProductEvents(inv, noopLogger{})
	if err := h.HandleProductEvent(context.Background(), []byte(`{"id":42,"type":"deleted"}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHandleProductEvent_InvalidMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	inv := mocks.NewMockProductInvalidator(ctrl)
	inv.EXPECT().Invalidate(gomock.Any(), gomock.Any()).Times(0)

	h := usecase.NewProductEvents(inv, noopLogger{})
	for _, raw := range []string{`{`, `{"id":0,"type":"updated"}`, `{"id":1,"type":"renamed"}`} {
		if err := h.HandleProductEvent(context.Background(), []byte(raw)); !errors.Is(err, validate.ErrInvalidEvent) {
			t.Fatalf("%s: want ErrInvalidEvent, got %v", raw, err)
		}
	}
}

func TestHandleProductEvent_InvalidateError(t *testing.T) {
	ctrl := gomock.NewController(t)
	inv := mocks.NewMockProductInvalidator(ctrl)
	boom := errors.New("cache unavailable")
	inv.EXPECT().Invalidate(gomock.Any(), domain.ProductID(1)).Return(boom)

	h := usecase.NewProductEvents(inv, noopLogger{})
	err := h.HandleProductEvent(context.Background(), []byte(`{"id":1,"type":"updated"}`))
	if !errors.Is(err, boom) || errors.Is(err, validate.ErrInvalidEvent) {
		t.Fatalf("want wrapped cache error, got %v", err)
	}
}
