package service

import (
	"encoding/json"
	"errors"

	"github.com/ecommercio/storefront-backend/internal/app/model"
	"github.com/ecommercio/storefront-backend/internal/app/repository"
	"github.com/ecommercio/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

// HomeMode tells the frontend how the homepage was composed.
type HomeMode string

const (
	// HomeModeAll is the fallback: no layout configured, every product
	// shown unsectioned.
	HomeModeAll HomeMode = "all"

	// HomeModeSections is a curated homepage of category sections.
	HomeModeSections HomeMode = "sections"

	// HomeModeNoSelection means a layout exists but every entry was
	// filtered out. The storefront shows an empty state rather than
	// silently falling back to everything.
	HomeModeNoSelection HomeMode = "no_selection"
)

// LayoutEntry is one stored section descriptor: a category and which of
// its products to feature. An empty ProductIDs means the whole category.
type LayoutEntry struct {
	CategoryID uint   `json:"category_id"`
	ProductIDs []uint `json:"product_ids"`
}

// HomeSection is a resolved layout entry ready for rendering.
type HomeSection struct {
	Category model.Category  `json:"category"`
	Products []model.Product `json:"products"`
}

// HomePage is the composed homepage.
type HomePage struct {
	Mode     HomeMode        `json:"mode"`
	Products []model.Product `json:"products,omitempty"`
	Sections []HomeSection   `json:"sections,omitempty"`
}

type LayoutService interface {
	ParseLayout(raw string) []LayoutEntry
	ValidateLayout(raw string) error
	ComposeHome() (*HomePage, error)
}

type layoutService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	settingRepo  repository.SettingRepository
}

func NewLayoutService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	settingRepo repository.SettingRepository,
) LayoutService {
	return &layoutService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		settingRepo:  settingRepo,
	}
}

// ParseLayout decodes a stored layout descriptor. Empty or malformed
// input yields a nil slice; a broken stored layout must degrade the
// homepage, never break it.
func (s *layoutService) ParseLayout(raw string) []LayoutEntry {
	if raw == "" {
		return nil
	}

	var entries []LayoutEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		logger.Warn("Ignoring malformed home layout", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}
	return entries
}

// ValidateLayout is the strict counterpart used on writes: the empty
// string clears the layout, anything else must decode as a layout array.
func (s *layoutService) ValidateLayout(raw string) error {
	if raw == "" {
		return nil
	}
	var entries []LayoutEntry
	return json.Unmarshal([]byte(raw), &entries)
}

// ComposeHome resolves the stored layout against the live catalog.
//
// No layout (or one that fails to parse) gives the full product list.
// Otherwise each entry becomes a section in stored order: entries whose
// category no longer exists are dropped, an entry with no product IDs
// expands to the whole category, and listed IDs select from the
// category's newest-first list with dangling ones skipped. Sections that
// end up empty are dropped. If every entry drops out the page reports
// that explicitly instead of falling back to the full list.
func (s *layoutService) ComposeHome() (*HomePage, error) {
	raw, err := s.settingRepo.Get(model.SettingHomeLayout)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	entries := s.ParseLayout(raw)
	if len(entries) == 0 {
		products, err := s.productRepo.FindAll()
		if err != nil {
			return nil, err
		}
		return &HomePage{Mode: HomeModeAll, Products: products}, nil
	}

	sections := make([]HomeSection, 0, len(entries))
	for _, entry := range entries {
		category, err := s.categoryRepo.FindByID(entry.CategoryID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logger.Debug("Dropping layout entry for missing category", map[string]interface{}{
					"category_id": entry.CategoryID,
				})
				continue
			}
			return nil, err
		}

		products, err := s.resolveSectionProducts(entry)
		if err != nil {
			return nil, err
		}
		if len(products) == 0 {
			continue
		}

		sections = append(sections, HomeSection{
			Category: *category,
			Products: products,
		})
	}

	if len(sections) == 0 {
		return &HomePage{Mode: HomeModeNoSelection}, nil
	}
	return &HomePage{Mode: HomeModeSections, Sections: sections}, nil
}

func (s *layoutService) resolveSectionProducts(entry LayoutEntry) ([]model.Product, error) {
	products, err := s.productRepo.FindByCategory(entry.CategoryID)
	if err != nil {
		return nil, err
	}
	if len(entry.ProductIDs) == 0 {
		return products, nil
	}

	// Filter the newest-first category list by the selected IDs, so the
	// section keeps catalog order no matter how the layout stores them.
	// IDs that vanished or moved out of the category fall away here.
	selected := make(map[uint]bool, len(entry.ProductIDs))
	for _, id := range entry.ProductIDs {
		selected[id] = true
	}

	filtered := make([]model.Product, 0, len(entry.ProductIDs))
	for _, p := range products {
		if selected[p.ID] {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}
