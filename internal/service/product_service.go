package service

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Lixing-Zhang/product-service/internal/models"
	"github.com/Lixing-Zhang/product-service/internal/repository"
)

const tracerName = "github.com/Lixing-Zhang/product-service/internal/service"

// ProductService passes product operations through to the repository
type ProductService struct {
	repo   repository.ProductRepository
	tracer trace.Tracer
}

// NewProductService creates a new product service
func NewProductService(repo repository.ProductRepository) *ProductService {
	return &ProductService{
		repo:   repo,
		tracer: otel.Tracer(tracerName),
	}
}

// ListProducts returns all products
func (s *ProductService) ListProducts(ctx context.Context) ([]models.Product, error) {
	ctx, span := s.tracer.Start(ctx, "internal.service.product.List")
	defer span.End()

	products, err := s.repo.GetAll(ctx)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("products.count", len(products)))
	return products, nil
}

// CreateProduct inserts a product without validating the request
func (s *ProductService) CreateProduct(ctx context.Context, req models.CreateProductRequest) error {
	ctx, span := s.tracer.Start(ctx, "internal.service.product.Create")
	defer span.End()

	if err := s.repo.Create(ctx, req); err != nil {
		recordError(span, err)
		return err
	}
	return nil
}

// DeleteProduct deletes a product by ID; a missing ID is not an error
func (s *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "internal.service.product.Delete")
	defer span.End()

	span.SetAttributes(attribute.Int64("product.id", id))
	if err := s.repo.Delete(ctx, id); err != nil {
		recordError(span, err)
		return err
	}
	return nil
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
