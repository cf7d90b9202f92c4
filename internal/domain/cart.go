package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ProductID — идентификатор товара в каталоге.
type ProductID int64

// Product — карточка товара из каталога.
// Остальные поля карточки (бренд, размеры и т.п.) хранятся в Extra как есть
// и проходят каталог → корзина → слот без изменений.
type Product struct {
	ID    ProductID
	Title string
	Price decimal.Decimal
	Image string
	Extra map[string]json.RawMessage
}

// Stock — остаток товара на складе на момент запроса.
type Stock struct {
	ID     ProductID `json:"id"`
	Amount int       `json:"amount"`
}

// LineItem — позиция корзины: товар и выбранное количество (>= 1).
type LineItem struct {
	Product
	Amount int `json:"amount"`
}

// Subtotal — стоимость позиции (price * amount).
func (li LineItem) Subtotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Amount)))
}

// Cart — упорядоченный список позиций (порядок первого добавления).
// Методы не меняют получателя: каждая мутация возвращает новый срез.
type Cart []LineItem

// Find — позиция по id; (item, true) при наличии.
func (c Cart) Find(id ProductID) (LineItem, bool) {
	for _, item := range c {
		if item.ID == id {
			return item, true
		}
	}
	return LineItem{}, false
}

// Clone — независимая копия корзины (nil → пустая корзина). Extra не копируется: он не меняется после разбора.
func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	copy(out, c)
	return out
}

// Append — новая корзина с позицией в конце.
func (c Cart) Append(item LineItem) Cart {
	out := make(Cart, 0, len(c)+1)
	out = append(out, c...)
	return append(out, item)
}

// Without — новая корзина без позиции id.
func (c Cart) Without(id ProductID) Cart {
	out := make(Cart, 0, len(c))
	for _, item := range c {
		if item.ID != id {
			out = append(out, item)
		}
	}
	return out
}

// WithAmount — новая корзина, где у позиции id заменено количество.
// Отсутствующий id не ошибка: корзина возвращается без изменений.
func (c Cart) WithAmount(id ProductID, amount int) Cart {
	out := c.Clone()
	for i := range out {
		if out[i].ID == id {
			out[i].Amount = amount
		}
	}
	return out
}

// Count — суммарное количество единиц товара.
func (c Cart) Count() int {
	n := 0
	for _, item := range c {
		n += item.Amount
	}
	return n
}

// Total — итоговая стоимость корзины.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Summary — представление корзины для UI (бейдж в шапке, итог на странице корзины).
type Summary struct {
	Items    Cart            `json:"items"`
	Products int             `json:"products"`
	Count    int             `json:"count"`
	Total    decimal.Decimal `json:"total"`
}

// Summarize — собирает Summary по копии корзины.
func (c Cart) Summarize() Summary {
	return Summary{
		Items:    c.Clone(),
		Products: len(c),
		Count:    c.Count(),
		Total:    c.Total(),
	}
}
