package service

import (
	"fmt"
	"io"

	"github.com/ecommercio/storefront-backend/internal/app/repository"
	"github.com/ecommercio/storefront-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
)

// ExportService produces back-office exports of the catalog.
type ExportService interface {
	ExportProductsXLSX(w io.Writer) error
}

type exportService struct {
	productRepo repository.ProductRepository
}

func NewExportService(productRepo repository.ProductRepository) ExportService {
	return &exportService{productRepo: productRepo}
}

var productExportHeader = []string{"ID", "Title", "Description", "Price (cents)", "Category", "Image URL", "Created At"}

func (s *exportService) ExportProductsXLSX(w io.Writer) error {
	products, err := s.productRepo.FindAll()
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for col, title := range productExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to build header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, p := range products {
		row := i + 2

		category := ""
		if p.Category != nil {
			category = p.Category.Name
		}

		values := []interface{}{
			p.ID,
			p.Title,
			p.Description,
			p.PriceCents,
			category,
			p.ImageURL,
			p.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return fmt.Errorf("failed to build cell name: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to write row %d: %w", row, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	logger.Info("Product catalog exported", map[string]interface{}{
		"count": len(products),
	})
	return nil
}
