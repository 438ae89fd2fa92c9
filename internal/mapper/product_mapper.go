package mapper

import (
	"encoding/json"

	"helpdesk-rag-be/internal/entity"
	"helpdesk-rag-be/internal/model"

	"gorm.io/datatypes"
)

type ProductMapper struct{}

func NewProductMapper() *ProductMapper {
	return &ProductMapper{}
}

func (m *ProductMapper) ToModel(e *entity.Product) *model.Product {
	return &model.Product{
		Id:          e.Id,
		Name:        e.Name,
		Description: e.Description,
		Price:       e.Price,
		Stock:       e.Stock,
		Attributes:  datatypes.JSON(e.Attributes),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func (m *ProductMapper) ToEntity(mo *model.Product) *entity.Product {
	return &entity.Product{
		Id:          mo.Id,
		Name:        mo.Name,
		Description: mo.Description,
		Price:       mo.Price,
		Stock:       mo.Stock,
		Attributes:  json.RawMessage(mo.Attributes),
		CreatedAt:   mo.CreatedAt,
		UpdatedAt:   mo.UpdatedAt,
	}
}

func (m *ProductMapper) ToEntities(models []*model.Product) []*entity.Product {
	out := make([]*entity.Product, len(models))
	for i, mo := range models {
		out[i] = m.ToEntity(mo)
	}
	return out
}
