package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"helpdesk-rag-be/internal/dto"
	"helpdesk-rag-be/internal/entity"
	"helpdesk-rag-be/internal/repository/contract"
	"helpdesk-rag-be/pkg/events"
	pkgNats "helpdesk-rag-be/pkg/nats"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IUserService interface {
	Register(ctx context.Context, req *dto.RegisterUserRequest) (*dto.UserResponse, error)
	GetUser(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error)
	ListUsers(ctx context.Context, limit, offset int) ([]*dto.UserResponse, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	Recharge(ctx context.Context, id uuid.UUID, req *dto.RechargeRequest) (*dto.UserResponse, error)
	ListRecharges(ctx context.Context, id uuid.UUID) ([]*dto.RechargeRecordResponse, error)
}

type userService struct {
	repo    contract.UserRepository
	natsPub *pkgNats.Publisher
}

func NewUserService(repo contract.UserRepository, natsPub *pkgNats.Publisher) IUserService {
	return &userService{
		repo:    repo,
		natsPub: natsPub,
	}
}

func (s *userService) Register(ctx context.Context, req *dto.RegisterUserRequest) (*dto.UserResponse, error) {
	existing, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fiber.NewError(fiber.StatusConflict, "username already taken")
	}

	user := &entity.User{
		Username: req.Username,
		Password: hashPassword(req.Password),
		Phone:    req.Phone,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	if s.natsPub != nil {
		_ = s.natsPub.Publish(ctx, events.NewUserRegistered(user.Id.String(), user.Username))
	}

	return toUserResponse(user), nil
}

func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.repo.FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "user not found")
	}
	return toUserResponse(user), nil
}

func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]*dto.UserResponse, error) {
	users, err := s.repo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, len(users))
	for i, user := range users {
		out[i] = toUserResponse(user)
	}
	return out, nil
}

func (s *userService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *userService) Recharge(ctx context.Context, id uuid.UUID, req *dto.RechargeRequest) (*dto.UserResponse, error) {
	record := &entity.RechargeRecord{
		UserId: id,
		Amount: req.Amount,
	}
	if err := s.repo.Recharge(ctx, record); err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "user not found")
	}

	user, err := s.repo.FindById(ctx, id)
	if err != nil || user == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "user not found")
	}
	return toUserResponse(user), nil
}

func (s *userService) ListRecharges(ctx context.Context, id uuid.UUID) ([]*dto.RechargeRecordResponse, error) {
	records, err := s.repo.FindRecharges(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.RechargeRecordResponse, len(records))
	for i, record := range records {
		out[i] = &dto.RechargeRecordResponse{
			Id:        record.Id,
			Amount:    record.Amount,
			CreatedAt: record.CreatedAt,
		}
	}
	return out, nil
}

func toUserResponse(user *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		Id:        user.Id,
		Username:  user.Username,
		Phone:     user.Phone,
		Balance:   user.Balance,
		CreatedAt: user.CreatedAt,
	}
}

func hashPassword(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
