package services

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mhusainh/ScanDine-sub000/entity"
	"github.com/mhusainh/ScanDine-sub000/pkg/midtrans"
	"github.com/mhusainh/ScanDine-sub000/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testServerKey = "test-server-key"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named in-memory database per test; one connection so every
	// gorm session sees the same data.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.SetupJoinTable(&entity.MenuItem{}, "ModifierGroups", &entity.MenuItemModifierGroup{}))
	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.Table{},
		&entity.Category{}, &entity.MenuItem{},
		&entity.ModifierGroup{}, &entity.ModifierItem{}, &entity.MenuItemModifierGroup{},
		&entity.Order{}, &entity.OrderItem{}, &entity.OrderItemModifier{},
		&entity.Payment{},
		&entity.OrderCounter{},
	))
	return db
}

// fixture wires the full service stack over a seeded catalog:
//
//	Latte 23000, Size group (required single): Regular +0, Large +5000
//	Nasi Goreng 30000, Spice Level (required single): Mild, Hot
//	                   Toppings (optional multi, max 2): Egg +4000,
//	                   Cheese +6000, Mushroom +3000
type fixture struct {
	db       *gorm.DB
	tables   *TableService
	orders   *OrderService
	payments *PaymentService

	table entity.Table

	latte      entity.MenuItem
	sizeLarge  entity.ModifierItem
	sizeReg    entity.ModifierItem
	nasiGoreng entity.MenuItem
	spiceMild  entity.ModifierItem
	topEgg     entity.ModifierItem
	topCheese  entity.ModifierItem
	topShroom  entity.ModifierItem
}

func newFixture(t *testing.T, snap *midtrans.SnapClient) *fixture {
	t.Helper()
	db := newTestDB(t)

	tableRepo := repository.NewTableRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	f := &fixture{db: db}
	f.tables = NewTableService(db, tableRepo, "http://localhost:8000")
	f.orders = NewOrderService(db, orderRepo, catalogRepo, paymentRepo, f.tables, snap, decimal.Zero)
	f.payments = NewPaymentService(db, orderRepo, paymentRepo, f.tables, testServerKey)

	tbl, err := f.tables.Create("T1")
	require.NoError(t, err)
	f.table = *tbl

	drinks := entity.Category{Name: "Drinks", SortOrder: 1}
	mains := entity.Category{Name: "Main Dishes", SortOrder: 2}
	require.NoError(t, db.Create(&drinks).Error)
	require.NoError(t, db.Create(&mains).Error)

	size := entity.ModifierGroup{
		Name: "Size", IsRequired: true, IsMultiple: false, MinSelection: 1, MaxSelection: 1,
		Items: []entity.ModifierItem{
			{Name: "Regular", Price: decimal.Zero, IsAvailable: true, SortOrder: 1},
			{Name: "Large", Price: decimal.NewFromInt(5000), IsAvailable: true, SortOrder: 2},
		},
	}
	require.NoError(t, db.Create(&size).Error)
	f.sizeReg = size.Items[0]
	f.sizeLarge = size.Items[1]

	spice := entity.ModifierGroup{
		Name: "Spice Level", IsRequired: true, IsMultiple: false, MinSelection: 1, MaxSelection: 1,
		Items: []entity.ModifierItem{
			{Name: "Mild", Price: decimal.Zero, IsAvailable: true, SortOrder: 1},
			{Name: "Hot", Price: decimal.Zero, IsAvailable: true, SortOrder: 2},
		},
	}
	require.NoError(t, db.Create(&spice).Error)
	f.spiceMild = spice.Items[0]

	toppings := entity.ModifierGroup{
		Name: "Toppings", IsRequired: false, IsMultiple: true, MinSelection: 0, MaxSelection: 2,
		Items: []entity.ModifierItem{
			{Name: "Egg", Price: decimal.NewFromInt(4000), IsAvailable: true, SortOrder: 1},
			{Name: "Cheese", Price: decimal.NewFromInt(6000), IsAvailable: true, SortOrder: 2},
			{Name: "Mushroom", Price: decimal.NewFromInt(3000), IsAvailable: true, SortOrder: 3},
		},
	}
	require.NoError(t, db.Create(&toppings).Error)
	f.topEgg = toppings.Items[0]
	f.topCheese = toppings.Items[1]
	f.topShroom = toppings.Items[2]

	f.latte = entity.MenuItem{Name: "Latte", Price: decimal.NewFromInt(23000), IsAvailable: true, CategoryID: drinks.ID}
	require.NoError(t, db.Create(&f.latte).Error)
	require.NoError(t, db.Model(&f.latte).Association("ModifierGroups").Append(&size))

	f.nasiGoreng = entity.MenuItem{Name: "Nasi Goreng", Price: decimal.NewFromInt(30000), IsAvailable: true, CategoryID: mains.ID}
	require.NoError(t, db.Create(&f.nasiGoreng).Error)
	require.NoError(t, db.Model(&f.nasiGoreng).Association("ModifierGroups").Append(&spice))
	require.NoError(t, db.Model(&f.nasiGoreng).Association("ModifierGroups").Append(&toppings))

	return f
}

// placeCashOrder is the common happy-path checkout used across tests:
// 2x large latte, cash, 56000 total.
func (f *fixture) placeCashOrder(t *testing.T) *PlaceOrderRes {
	t.Helper()
	res, err := f.orders.PlaceOrder(&PlaceOrderReq{
		TableUuid:     f.table.Uuid,
		CustomerName:  "Ayu",
		PaymentMethod: entity.PayCash,
		Items: []CartLine{
			{MenuItemID: f.latte.ID, Quantity: 2, ModifierItemIDs: []uint{f.sizeLarge.ID}},
		},
	})
	require.NoError(t, err)
	return res
}

func (f *fixture) tableStatus(t *testing.T) entity.TableStatus {
	t.Helper()
	var tbl entity.Table
	require.NoError(t, f.db.First(&tbl, f.table.ID).Error)
	return tbl.Status
}

func (f *fixture) payment(t *testing.T, orderID uint) *entity.Payment {
	t.Helper()
	var p entity.Payment
	require.NoError(t, f.db.Where("order_id = ?", orderID).First(&p).Error)
	return &p
}

func (f *fixture) order(t *testing.T, orderID uint) *entity.Order {
	t.Helper()
	var o entity.Order
	require.NoError(t, f.db.First(&o, orderID).Error)
	return &o
}

// newSnapTestServer fakes the Snap transaction endpoint.
func newSnapTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"token":"snap-test-token","redirect_url":"https://example.test/pay"}`)
	}))
	t.Cleanup(srv.Close)
	return srv
}
