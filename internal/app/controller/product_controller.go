package controller

import (
	"errors"
	"net/http"

	"github.com/ecommercio/storefront-backend/internal/app/service"
	apperrors "github.com/ecommercio/storefront-backend/internal/errors"
	"github.com/ecommercio/storefront-backend/internal/middleware"
	"github.com/ecommercio/storefront-backend/internal/storage"
	"github.com/gin-gonic/gin"
)

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

// ProductRequest binds from JSON or from a multipart form. With multipart,
// an optional "image" file part replaces ImageURL.
type ProductRequest struct {
	Title       string `form:"title" json:"title" binding:"required"`
	Description string `form:"description" json:"description"`
	PriceCents  int64  `form:"price_cents" json:"price_cents"`
	CategoryID  *uint  `form:"category_id" json:"category_id"`
	ImageURL    string `form:"image_url" json:"image_url"`
}

// ListProducts returns the catalog, newest first
// GET /api/products
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	products, err := ctrl.productService.ListProducts()
	if err != nil {
		log.Error("Failed to list products", err, nil)
		apperrors.InternalError(c, "Failed to load products")
		return
	}

	c.JSON(http.StatusOK, products)
}

// GetProduct returns one product
// GET /api/products/:id
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	product, err := ctrl.productService.GetProduct(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to load product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get product")
		return
	}

	c.JSON(http.StatusOK, product)
}

// CreateProduct adds a product, with an optional multipart image
// POST /api/products (admin)
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	input, ok := ctrl.bindProductInput(c)
	if !ok {
		return
	}

	product, err := ctrl.productService.CreateProduct(c.Request.Context(), *input)
	if err != nil {
		ctrl.respondProductError(c, err, "create product")
		return
	}

	log.Info("Product created via API", map[string]interface{}{
		"product_id": product.ID,
	})
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct edits a product
// PUT /api/products/:id (admin)
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	input, ok := ctrl.bindProductInput(c)
	if !ok {
		return
	}

	product, err := ctrl.productService.UpdateProduct(c.Request.Context(), id, *input)
	if err != nil {
		ctrl.respondProductError(c, err, "update product")
		return
	}

	log.Info("Product updated via API", map[string]interface{}{
		"product_id": product.ID,
	})
	c.JSON(http.StatusOK, product)
}

// DeleteProduct removes a product
// DELETE /api/products/:id (admin)
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.productService.DeleteProduct(id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete product")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// bindProductInput accepts both JSON bodies and multipart forms, so the
// admin UI can submit product fields and an image in one request.
func (ctrl *ProductController) bindProductInput(c *gin.Context) (*service.ProductInput, bool) {
	var req ProductRequest
	if err := c.ShouldBind(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Missing or invalid product fields")
		return nil, false
	}

	input := &service.ProductInput{
		Title:       req.Title,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		CategoryID:  req.CategoryID,
		ImageURL:    req.ImageURL,
	}

	file, err := c.FormFile("image")
	if err == nil && file != nil {
		src, err := file.Open()
		if err != nil {
			apperrors.BadRequest(c, apperrors.UploadFailed, "Could not read the uploaded image")
			return nil, false
		}
		// src is read fully by the storage layer within this request.
		input.Image = &service.ImageUpload{
			Filename:    file.Filename,
			ContentType: file.Header.Get("Content-Type"),
			Reader:      src,
		}
	}

	return input, true
}

func (ctrl *ProductController) respondProductError(c *gin.Context, err error, context string) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrProductNotFound):
		apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
	case errors.Is(err, service.ErrProductTitleEmpty):
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Product title is required")
	case errors.Is(err, service.ErrProductInvalidPrice):
		apperrors.BadRequest(c, apperrors.ValidationInvalidPrice, "Price must not be negative")
	case errors.Is(err, service.ErrCategoryNotFound):
		apperrors.NotFound(c, apperrors.CategoryNotFound, "Category not found")
	case errors.Is(err, storage.ErrInvalidContentType):
		apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "Only image files are allowed")
	default:
		log.Error("Product operation failed", err, map[string]interface{}{
			"context": context,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, context)
	}
}
