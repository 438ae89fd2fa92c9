package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Product struct {
	Id          uuid.UUID
	Name        string
	Description string
	Price       float64
	Stock       int
	Attributes  json.RawMessage
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
