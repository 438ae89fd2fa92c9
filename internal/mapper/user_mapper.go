package mapper

import (
	"helpdesk-rag-be/internal/entity"
	"helpdesk-rag-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToModel(e *entity.User) *model.User {
	return &model.User{
		Id:        e.Id,
		Username:  e.Username,
		Password:  e.Password,
		Phone:     e.Phone,
		Balance:   e.Balance,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func (m *UserMapper) ToEntity(mo *model.User) *entity.User {
	return &entity.User{
		Id:        mo.Id,
		Username:  mo.Username,
		Password:  mo.Password,
		Phone:     mo.Phone,
		Balance:   mo.Balance,
		CreatedAt: mo.CreatedAt,
		UpdatedAt: mo.UpdatedAt,
	}
}

func (m *UserMapper) ToEntities(models []*model.User) []*entity.User {
	out := make([]*entity.User, len(models))
	for i, mo := range models {
		out[i] = m.ToEntity(mo)
	}
	return out
}

func (m *UserMapper) RechargeToModel(e *entity.RechargeRecord) *model.RechargeRecord {
	return &model.RechargeRecord{
		Id:        e.Id,
		UserId:    e.UserId,
		Amount:    e.Amount,
		CreatedAt: e.CreatedAt,
	}
}

func (m *UserMapper) RechargeToEntity(mo *model.RechargeRecord) *entity.RechargeRecord {
	return &entity.RechargeRecord{
		Id:        mo.Id,
		UserId:    mo.UserId,
		Amount:    mo.Amount,
		CreatedAt: mo.CreatedAt,
	}
}

func (m *UserMapper) RechargeToEntities(models []*model.RechargeRecord) []*entity.RechargeRecord {
	out := make([]*entity.RechargeRecord, len(models))
	for i, mo := range models {
		out[i] = m.RechargeToEntity(mo)
	}
	return out
}
