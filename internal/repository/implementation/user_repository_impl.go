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

type UserRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UserMapper
}

func NewUserRepository(db *gorm.DB) contract.UserRepository {
	return &UserRepositoryImpl{
		db:     db,
		mapper: mapper.NewUserMapper(),
	}
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *entity.User) error {
	modelUser := r.mapper.ToModel(user)
	if err := r.db.WithContext(ctx).Create(modelUser).Error; err != nil {
		return err
	}
	*user = *r.mapper.ToEntity(modelUser)
	return nil
}

func (r *UserRepositoryImpl) Update(ctx context.Context, user *entity.User) error {
	modelUser := r.mapper.ToModel(user)
	if err := r.db.WithContext(ctx).Save(modelUser).Error; err != nil {
		return err
	}
	*user = *r.mapper.ToEntity(modelUser)
	return nil
}

func (r *UserRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.User{}).Error
}

func (r *UserRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var modelUser model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&modelUser).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&modelUser), nil
}

func (r *UserRepositoryImpl) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	var modelUser model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&modelUser).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&modelUser), nil
}

func (r *UserRepositoryImpl) FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	var modelUsers []*model.User
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&modelUsers).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(modelUsers), nil
}

func (r *UserRepositoryImpl) Recharge(ctx context.Context, record *entity.RechargeRecord) error {
	modelRecord := r.mapper.RechargeToModel(record)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.User{}).
			Where("id = ?", record.UserId).
			Update("balance", gorm.Expr("balance + ?", record.Amount))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Create(modelRecord).Error
	})
	if err != nil {
		return err
	}
	*record = *r.mapper.RechargeToEntity(modelRecord)
	return nil
}

func (r *UserRepositoryImpl) FindRecharges(ctx context.Context, userId uuid.UUID) ([]*entity.RechargeRecord, error) {
	var records []*model.RechargeRecord
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return r.mapper.RechargeToEntities(records), nil
}
