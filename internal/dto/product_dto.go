package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description" validate:"omitempty"`
	Price       float64         `json:"price" validate:"required,gte=0"`
	Stock       int             `json:"stock" validate:"gte=0"`
	Attributes  json.RawMessage `json:"attributes,omitempty"`
}

type UpdateProductRequest struct {
	Name        string          `json:"name" validate:"omitempty"`
	Description string          `json:"description" validate:"omitempty"`
	Price       float64         `json:"price" validate:"omitempty,gte=0"`
	Stock       int             `json:"stock" validate:"omitempty,gte=0"`
	Attributes  json.RawMessage `json:"attributes,omitempty"`
}

type ProductResponse struct {
	Id          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       float64         `json:"price"`
	Stock       int             `json:"stock"`
	Attributes  json.RawMessage `json:"attributes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
