package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id        uuid.UUID
	Username  string
	Password  string // stored as a hash, never returned to clients
	Phone     string
	Balance   float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

type RechargeRecord struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Amount    float64
	CreatedAt time.Time
}
