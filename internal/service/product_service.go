package service

import (
	"context"

	"helpdesk-rag-be/internal/dto"
	"helpdesk-rag-be/internal/entity"
	"helpdesk-rag-be/internal/repository/contract"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IProductService interface {
	Create(ctx context.Context, req *dto.CreateProductRequest) (*dto.ProductResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, limit, offset int) ([]*dto.ProductResponse, error)
}

type productService struct {
	repo contract.ProductRepository
}

func NewProductService(repo contract.ProductRepository) IProductService {
	return &productService{repo: repo}
}

func (s *productService) Create(ctx context.Context, req *dto.CreateProductRequest) (*dto.ProductResponse, error) {
	product := &entity.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Attributes:  req.Attributes,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := s.repo.FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "product not found")
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Description != "" {
		product.Description = req.Description
	}
	if req.Price > 0 {
		product.Price = req.Price
	}
	if req.Stock >= 0 {
		product.Stock = req.Stock
	}
	if len(req.Attributes) > 0 {
		product.Attributes = req.Attributes
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	product, err := s.repo.FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "product not found")
	}
	return toProductResponse(product), nil
}

func (s *productService) List(ctx context.Context, limit, offset int) ([]*dto.ProductResponse, error) {
	products, err := s.repo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, len(products))
	for i, product := range products {
		out[i] = toProductResponse(product)
	}
	return out, nil
}

func toProductResponse(product *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		Id:          product.Id,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Stock:       product.Stock,
		Attributes:  product.Attributes,
		CreatedAt:   product.CreatedAt,
	}
}
