package domain

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Цена в JSON — число, как в снимках витрины; разбор принимает и число, и строку.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// productFields — известные поля карточки.
type productFields struct {
	ID    ProductID       `json:"id"`
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image"`
}

type lineItemFields struct {
	productFields
	Amount int `json:"amount"`
}

var (
	productKeys  = []string{"id", "title", "price", "image"}
	lineItemKeys = []string{"id", "title", "price", "image", "amount"}
)

func (p Product) fields() productFields {
	return productFields{ID: p.ID, Title: p.Title, Price: p.Price, Image: p.Image}
}

func (p *Product) setFields(f productFields) {
	p.ID, p.Title, p.Price, p.Image = f.ID, f.Title, f.Price, f.Image
}

// MarshalJSON — известные поля плюс Extra.
func (p Product) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(p.fields(), p.Extra)
}

// UnmarshalJSON — поля, которых нет в Product, сохраняются в Extra.
func (p *Product) UnmarshalJSON(raw []byte) error {
	var f productFields
	extra, err := unmarshalWithExtra(raw, &f, productKeys)
	if err != nil {
		return err
	}
	p.setFields(f)
	p.Extra = extra
	return nil
}

// MarshalJSON — позиция плоским объектом: поля товара и amount.
func (li LineItem) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(lineItemFields{productFields: li.fields(), Amount: li.Amount}, li.Extra)
}

func (li *LineItem) UnmarshalJSON(raw []byte) error {
	var f lineItemFields
	extra, err := unmarshalWithExtra(raw, &f, lineItemKeys)
	if err != nil {
		return err
	}
	li.setFields(f.productFields)
	li.Extra = extra
	li.Amount = f.Amount
	return nil
}

// marshalWithExtra — известные поля перекрывают одноимённые ключи Extra.
func marshalWithExtra(known any, extra map[string]json.RawMessage) ([]byte, error) {
	raw, err := json.Marshal(known)
	if err != nil || len(extra) == 0 {
		return raw, err
	}
	var own map[string]json.RawMessage
	if err := json.Unmarshal(raw, &own); err != nil {
		return nil, err
	}
	merged := make(map[string]json.RawMessage, len(extra)+len(own))
	for k, v := range extra {
		merged[k] = v
	}
	for k, v := range own {
		merged[k] = v
	}
	return json.Marshal(merged)
}

// unmarshalWithExtra — заполняет known и возвращает остальные ключи объекта (nil, если их нет).
// Сравнение ключей без учёта регистра, как у encoding/json.
func unmarshalWithExtra(raw []byte, known any, keys []string) (map[string]json.RawMessage, error) {
	if err := json.Unmarshal(raw, known); err != nil {
		return nil, err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(raw, &all); err != nil {
		return nil, err
	}
	for k := range all {
		if isKnownKey(k, keys) {
			delete(all, k)
		}
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all, nil
}

func isKnownKey(k string, keys []string) bool {
	for _, known := range keys {
		if strings.EqualFold(k, known) {
			return true
		}
	}
	return false
}
