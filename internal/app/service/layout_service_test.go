package service

import (
	"fmt"
	"testing"

	"github.com/ecommercio/storefront-backend/internal/app/model"
	"github.com/ecommercio/storefront-backend/internal/app/repository"
	"github.com/ecommercio/storefront-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type layoutFixture struct {
	layoutService LayoutService
	settingRepo   repository.SettingRepository
	shoes         *model.Category
	hats          *model.Category
	runner        *model.Product
	boot          *model.Product
	cap           *model.Product
	loose         *model.Product
}

func setupLayoutServiceTest(t *testing.T) *layoutFixture {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	categoryRepo := repository.NewCategoryRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	settingRepo := repository.NewSettingRepository(testDB)

	shoes := &model.Category{Name: "Shoes"}
	hats := &model.Category{Name: "Hats"}
	require.NoError(t, categoryRepo.Create(shoes))
	require.NoError(t, categoryRepo.Create(hats))

	runner := &model.Product{Title: "Runner", PriceCents: 5900, CategoryID: &shoes.ID}
	boot := &model.Product{Title: "Boot", PriceCents: 12900, CategoryID: &shoes.ID}
	cap := &model.Product{Title: "Cap", PriceCents: 1900, CategoryID: &hats.ID}
	loose := &model.Product{Title: "Gift Card", PriceCents: 2500}
	for _, p := range []*model.Product{runner, boot, cap, loose} {
		require.NoError(t, productRepo.Create(p))
	}

	return &layoutFixture{
		layoutService: NewLayoutService(productRepo, categoryRepo, settingRepo),
		settingRepo:   settingRepo,
		shoes:         shoes,
		hats:          hats,
		runner:        runner,
		boot:          boot,
		cap:           cap,
		loose:         loose,
	}
}

func (f *layoutFixture) storeLayout(t *testing.T, raw string) {
	t.Helper()
	require.NoError(t, f.settingRepo.Set(model.SettingHomeLayout, raw))
}

func TestLayoutService_ParseLayout(t *testing.T) {
	fixture := setupLayoutServiceTest(t)

	assert.Nil(t, fixture.layoutService.ParseLayout(""))
	assert.Nil(t, fixture.layoutService.ParseLayout("not json"))
	assert.Nil(t, fixture.layoutService.ParseLayout(`{"category_id":1}`))

	entries := fixture.layoutService.ParseLayout(`[{"category_id":3,"product_ids":[7,9]}]`)
	require.Len(t, entries, 1)
	assert.Equal(t, uint(3), entries[0].CategoryID)
	assert.Equal(t, []uint{7, 9}, entries[0].ProductIDs)
}

func TestLayoutService_ValidateLayout(t *testing.T) {
	fixture := setupLayoutServiceTest(t)

	assert.NoError(t, fixture.layoutService.ValidateLayout(""))
	assert.NoError(t, fixture.layoutService.ValidateLayout("[]"))
	assert.NoError(t, fixture.layoutService.ValidateLayout(`[{"category_id":1,"product_ids":[]}]`))
	assert.Error(t, fixture.layoutService.ValidateLayout("not json"))
	assert.Error(t, fixture.layoutService.ValidateLayout(`{"category_id":1}`))
}

func TestLayoutService_ComposeHome_NoLayoutShowsEverything(t *testing.T) {
	fixture := setupLayoutServiceTest(t)

	page, err := fixture.layoutService.ComposeHome()
	require.NoError(t, err)
	assert.Equal(t, HomeModeAll, page.Mode)
	assert.Len(t, page.Products, 4)
	assert.Empty(t, page.Sections)
}

func TestLayoutService_ComposeHome_EmptyOrBrokenLayoutFallsBack(t *testing.T) {
	for _, raw := range []string{"[]", "not json"} {
		t.Run(fmt.Sprintf("raw=%q", raw), func(t *testing.T) {
			fixture := setupLayoutServiceTest(t)
			fixture.storeLayout(t, raw)

			page, err := fixture.layoutService.ComposeHome()
			require.NoError(t, err)
			assert.Equal(t, HomeModeAll, page.Mode)
			assert.Len(t, page.Products, 4)
		})
	}
}

func TestLayoutService_ComposeHome_EmptyProductIDsMeansWholeCategory(t *testing.T) {
	fixture := setupLayoutServiceTest(t)
	fixture.storeLayout(t, fmt.Sprintf(`[{"category_id":%d,"product_ids":[]}]`, fixture.shoes.ID))

	page, err := fixture.layoutService.ComposeHome()
	require.NoError(t, err)
	assert.Equal(t, HomeModeSections, page.Mode)
	require.Len(t, page.Sections, 1)
	assert.Equal(t, fixture.shoes.ID, page.Sections[0].Category.ID)
	assert.Len(t, page.Sections[0].Products, 2)
}

func TestLayoutService_ComposeHome_ExplicitSelectionIsNewestFirst(t *testing.T) {
	fixture := setupLayoutServiceTest(t)

	// Runner was created before Boot. The layout lists them oldest first,
	// but the section follows catalog order, not the stored ID order.
	fixture.storeLayout(t, fmt.Sprintf(
		`[{"category_id":%d,"product_ids":[%d,%d]}]`,
		fixture.shoes.ID, fixture.runner.ID, fixture.boot.ID,
	))

	page, err := fixture.layoutService.ComposeHome()
	require.NoError(t, err)
	require.Len(t, page.Sections, 1)
	require.Len(t, page.Sections[0].Products, 2)
	assert.Equal(t, fixture.boot.ID, page.Sections[0].Products[0].ID)
	assert.Equal(t, fixture.runner.ID, page.Sections[0].Products[1].ID)
}

func TestLayoutService_ComposeHome_DropsDanglingReferences(t *testing.T) {
	fixture := setupLayoutServiceTest(t)

	// Unknown category, a product from another category, and a vanished
	// product ID all drop out; the valid section remains.
	fixture.storeLayout(t, fmt.Sprintf(
		`[{"category_id":9999,"product_ids":[]},{"category_id":%d,"product_ids":[%d,9999,%d]}]`,
		fixture.shoes.ID, fixture.cap.ID, fixture.runner.ID,
	))

	page, err := fixture.layoutService.ComposeHome()
	require.NoError(t, err)
	assert.Equal(t, HomeModeSections, page.Mode)
	require.Len(t, page.Sections, 1)
	require.Len(t, page.Sections[0].Products, 1)
	assert.Equal(t, fixture.runner.ID, page.Sections[0].Products[0].ID)
}

func TestLayoutService_ComposeHome_AllEntriesFilteredOut(t *testing.T) {
	fixture := setupLayoutServiceTest(t)
	fixture.storeLayout(t, fmt.Sprintf(
		`[{"category_id":9999,"product_ids":[]},{"category_id":%d,"product_ids":[9999]}]`,
		fixture.hats.ID,
	))

	page, err := fixture.layoutService.ComposeHome()
	require.NoError(t, err)
	assert.Equal(t, HomeModeNoSelection, page.Mode)
	assert.Empty(t, page.Sections)
	assert.Empty(t, page.Products)
}
