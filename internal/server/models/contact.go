package models

import (
	"time"

	"github.com/google/uuid"
)

// Contact — контакт, принадлежащий ровно одному пользователю.
//
// ID — BIGSERIAL: порядок возрастания id совпадает с порядком вставки,
// на этом строится выдача списка контактов.
type Contact struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Birthday  time.Time
	UserID    uuid.UUID
	CreatedAt time.Time
}

// ContactData — изменяемые поля контакта (тело create/update запросов).
type ContactData struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Birthday  time.Time
}
