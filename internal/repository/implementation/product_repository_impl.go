package implementation

import (
	"context"
	"errors"

	"helpdesk-rag-be/internal/entity"
	"helpdesk-rag-be/internal/mapper"
	"helpdesk-rag-be/internal/model"
	"helpdesk-rag-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProductMapper
}

func NewProductRepository(db *gorm.DB) contract.ProductRepository {
	return &ProductRepositoryImpl{
		db:     db,
		mapper: mapper.NewProductMapper(),
	}
}

func (r *ProductRepositoryImpl) Create(ctx context.Context, product *entity.Product) error {
	modelProduct := r.mapper.ToModel(product)
	if err := r.db.WithContext(ctx).Create(modelProduct).Error; err != nil {
		return err
	}
	*product = *r.mapper.ToEntity(modelProduct)
	return nil
}

func (r *ProductRepositoryImpl) Update(ctx context.Context, product *entity.Product) error {
	modelProduct := r.mapper.ToModel(product)
	if err := r.db.WithContext(ctx).Save(modelProduct).Error; err != nil {
		return err
	}
	*product = *r.mapper.ToEntity(modelProduct)
	return nil
}

func (r *ProductRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Product{}).Error
}

func (r *ProductRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var modelProduct model.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&modelProduct).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&modelProduct), nil
}

func (r *ProductRepositoryImpl) FindAll(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	var modelProducts []*model.Product
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&modelProducts).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(modelProducts), nil
}
