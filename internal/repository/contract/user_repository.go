package contract

import (
	"context"

	"helpdesk-rag-be/internal/entity"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error)

	// Balance is adjusted and the recharge row written in one transaction.
	Recharge(ctx context.Context, record *entity.RechargeRecord) error
	FindRecharges(ctx context.Context, userId uuid.UUID) ([]*entity.RechargeRecord, error)
}
