package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/ecommercio/storefront-backend/config"
	"github.com/ecommercio/storefront-backend/internal/app/model"
	"github.com/ecommercio/storefront-backend/internal/app/repository"
	"github.com/ecommercio/storefront-backend/internal/db"
	"github.com/ecommercio/storefront-backend/pkg/util"
	"github.com/xuri/excelize/v2"
)

// Seeds the database: ensures a default admin account exists, and
// optionally bulk-imports products from an XLSX file with the columns
// title, description, price_cents, category. Categories are created on
// the fly.
//
// Usage: go run cmd/seed/main.go [xlsx_file_path]
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	userRepo := repository.NewUserRepository(db.GetDB())
	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())

	if err := seedDefaultAdmin(userRepo); err != nil {
		log.Fatal("Failed to seed default admin:", err)
	}

	if len(os.Args) < 2 {
		fmt.Println("No XLSX file given, skipping product import.")
		return
	}

	filePath := os.Args[1]
	fmt.Printf("Reading XLSX file: %s\n", filePath)

	imported, err := importProductsFromXLSX(filePath, categoryRepo, productRepo)
	if err != nil {
		log.Fatal("Failed to import products:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total products imported: %d\n", imported)
}

// seedDefaultAdmin creates the admin/admin account if no admin exists
// yet. The password is meant to be changed right after first sign-in.
func seedDefaultAdmin(userRepo repository.UserRepository) error {
	hasAdmin, err := userRepo.HasAdmin()
	if err != nil {
		return err
	}
	if hasAdmin {
		fmt.Println("Admin account already exists, skipping.")
		return nil
	}

	hash, err := util.HashPassword("admin")
	if err != nil {
		return err
	}

	admin := &model.User{
		Username:     "admin",
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	}
	if err := userRepo.Create(admin); err != nil {
		return err
	}

	fmt.Println("Default admin account created (admin/admin). Change the password!")
	return nil
}

func importProductsFromXLSX(
	filePath string,
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
) (int, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return 0, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return 0, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return 0, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return 0, fmt.Errorf("no data found in XLSX file")
	}

	// Category cache, so each name is looked up or created once
	categories := make(map[string]*model.Category)
	existing, err := categoryRepo.FindAll()
	if err != nil {
		return 0, err
	}
	for i := range existing {
		categories[strings.ToLower(existing[i].Name)] = &existing[i]
	}

	imported := 0
	skipped := 0

	// First row is the header
	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}
		if len(row) < 3 {
			skipped++
			continue
		}

		title := strings.TrimSpace(row[0])
		description := ""
		if len(row) > 1 {
			description = strings.TrimSpace(row[1])
		}
		priceStr := strings.TrimSpace(row[2])

		if title == "" || priceStr == "" {
			skipped++
			continue
		}

		priceCents, err := strconv.ParseInt(priceStr, 10, 64)
		if err != nil || priceCents < 0 {
			fmt.Printf("Row %d: invalid price %q, skipping\n", i+1, priceStr)
			skipped++
			continue
		}

		var categoryID *uint
		if len(row) > 3 {
			if name := strings.TrimSpace(row[3]); name != "" {
				category, err := resolveCategory(categoryRepo, categories, name)
				if err != nil {
					return imported, err
				}
				categoryID = &category.ID
			}
		}

		product := &model.Product{
			Title:       title,
			Description: description,
			PriceCents:  priceCents,
			CategoryID:  categoryID,
		}
		if err := productRepo.Create(product); err != nil {
			return imported, fmt.Errorf("row %d: %w", i+1, err)
		}
		imported++
	}

	if skipped > 0 {
		fmt.Printf("Skipped %d rows\n", skipped)
	}
	return imported, nil
}

func resolveCategory(
	categoryRepo repository.CategoryRepository,
	cache map[string]*model.Category,
	name string,
) (*model.Category, error) {
	key := strings.ToLower(name)
	if category, ok := cache[key]; ok {
		return category, nil
	}

	category := &model.Category{Name: name}
	if err := categoryRepo.Create(category); err != nil {
		return nil, fmt.Errorf("failed to create category %q: %w", name, err)
	}

	fmt.Printf("Created category: %s\n", name)
	cache[key] = category
	return category, nil
}
