package domain

import "time"

// Типы событий каталога.
const (
	ProductUpdated = "updated"
	ProductDeleted = "deleted"
)

// ProductEvent — событие изменения карточки товара из топика каталога.
type ProductEvent struct {
	ID   ProductID `json:"id"`
	Type string    `json:"type"`
}

// Notification — сообщение для пользователя (toast).
type Notification struct {
	ID      string    `json:"id"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}
