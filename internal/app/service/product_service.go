package service

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/ecommercio/storefront-backend/internal/app/model"
	"github.com/ecommercio/storefront-backend/internal/app/repository"
	"github.com/ecommercio/storefront-backend/internal/storage"
	"github.com/ecommercio/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound     = errors.New("product not found")
	ErrProductTitleEmpty   = errors.New("product title is required")
	ErrProductInvalidPrice = errors.New("product price must not be negative")
)

// ProductInput carries the admin-editable product fields. A nil CategoryID
// leaves the product uncategorized. Image is optional and replaces the
// current image when present; ImageURL covers externally hosted images and
// is only consulted when no file was uploaded.
type ProductInput struct {
	Title       string
	Description string
	PriceCents  int64
	CategoryID  *uint
	ImageURL    string
	Image       *ImageUpload
}

// ImageUpload is a product image pending storage.
type ImageUpload struct {
	Filename    string
	ContentType string
	Reader      io.Reader
}

type ProductService interface {
	ListProducts() ([]model.Product, error)
	GetProduct(id uint) (*model.Product, error)
	ListProductsByCategory(categoryID uint) ([]model.Product, error)
	CreateProduct(ctx context.Context, input ProductInput) (*model.Product, error)
	UpdateProduct(ctx context.Context, id uint, input ProductInput) (*model.Product, error)
	DeleteProduct(id uint) error
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	images       storage.ImageStorage
}

func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	images storage.ImageStorage,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		images:       images,
	}
}

func (s *productService) ListProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *productService) GetProduct(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) ListProductsByCategory(categoryID uint) ([]model.Product, error) {
	if _, err := s.categoryRepo.FindByID(categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return s.productRepo.FindByCategory(categoryID)
}

func (s *productService) CreateProduct(ctx context.Context, input ProductInput) (*model.Product, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	imageURL, err := s.storeImage(ctx, input.Image)
	if err != nil {
		return nil, err
	}
	if imageURL == "" {
		imageURL = input.ImageURL
	}

	product := &model.Product{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		PriceCents:  input.PriceCents,
		CategoryID:  input.CategoryID,
		ImageURL:    imageURL,
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	logger.Info("Product created", map[string]interface{}{
		"product_id":  product.ID,
		"title":       product.Title,
		"price_cents": product.PriceCents,
	})
	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id uint, input ProductInput) (*model.Product, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}

	product.Title = strings.TrimSpace(input.Title)
	product.Description = input.Description
	product.PriceCents = input.PriceCents
	product.CategoryID = input.CategoryID
	// FindByID preloads Category; drop it so the save writes category_id
	// from the foreign key, not the stale association.
	product.Category = nil

	if input.Image != nil {
		imageURL, err := s.storeImage(ctx, input.Image)
		if err != nil {
			return nil, err
		}
		product.ImageURL = imageURL
	} else if input.ImageURL != "" {
		product.ImageURL = input.ImageURL
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}

	logger.Info("Product updated", map[string]interface{}{
		"product_id": product.ID,
		"title":      product.Title,
	})
	return product, nil
}

func (s *productService) DeleteProduct(id uint) error {
	if _, err := s.GetProduct(id); err != nil {
		return err
	}

	if err := s.productRepo.Delete(id); err != nil {
		return err
	}

	logger.Info("Product deleted", map[string]interface{}{
		"product_id": id,
	})
	return nil
}

func (s *productService) validate(input ProductInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return ErrProductTitleEmpty
	}
	if input.PriceCents < 0 {
		return ErrProductInvalidPrice
	}
	if input.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(*input.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}
	}
	return nil
}

func (s *productService) storeImage(ctx context.Context, image *ImageUpload) (string, error) {
	if image == nil {
		return "", nil
	}

	url, err := s.images.SaveImage(ctx, image.Filename, image.ContentType, image.Reader)
	if err != nil {
		logger.Error("Failed to store product image", err, map[string]interface{}{
			"filename": image.Filename,
		})
		return "", err
	}
	return url, nil
}
