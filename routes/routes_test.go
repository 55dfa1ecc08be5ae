package routes

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mhusainh/ScanDine-sub000/configs"
	"github.com/mhusainh/ScanDine-sub000/entity"
	"github.com/mhusainh/ScanDine-sub000/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	cfg := &configs.Config{
		Port:          "0",
		JWTSecret:     "test-secret",
		JWTTTL:        time.Hour,
		TaxRate:       decimal.Zero,
		PublicBaseURL: "http://localhost:8000",
	}

	r := gin.New()
	RegisterRoutes(r, db, cfg)

	admin := entity.User{Email: "admin@test", Password: "x", Name: "Admin", Role: "admin"}
	require.NoError(t, db.Create(&admin).Error)
	token, err := utils.GenerateToken(admin.ID, admin.Role, cfg.JWTSecret, cfg.JWTTTL)
	require.NoError(t, err)

	return r, db, token
}

func doJSON(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminUpdatesModifierGroup(t *testing.T) {
	r, db, token := newTestRouter(t)

	g := entity.ModifierGroup{Name: "Size", IsRequired: false, MaxSelection: 1}
	require.NoError(t, db.Create(&g).Error)

	w := doJSON(r, http.MethodPatch, fmt.Sprintf("/admin/modifier-groups/%d", g.ID), token,
		`{"name":"Cup Size","isRequired":true}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got entity.ModifierGroup
	require.NoError(t, db.First(&got, g.ID).Error)
	assert.Equal(t, "Cup Size", got.Name)
	assert.True(t, got.IsRequired)
	// Untouched fields stay put.
	assert.Equal(t, 1, got.MaxSelection)
}

func TestAdminUpdatesModifierItem(t *testing.T) {
	r, db, token := newTestRouter(t)

	g := entity.ModifierGroup{Name: "Size", MaxSelection: 1}
	require.NoError(t, db.Create(&g).Error)
	mi := entity.ModifierItem{ModifierGroupID: g.ID, Name: "Large", Price: decimal.NewFromInt(5000), IsAvailable: true}
	require.NoError(t, db.Create(&mi).Error)

	w := doJSON(r, http.MethodPatch, fmt.Sprintf("/admin/modifier-items/%d", mi.ID), token,
		`{"price":"7000","isAvailable":false}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got entity.ModifierItem
	require.NoError(t, db.First(&got, mi.ID).Error)
	assert.Equal(t, "7000.00", got.Price.StringFixed(2))
	assert.False(t, got.IsAvailable)
	assert.Equal(t, "Large", got.Name)
}

func TestModifierUpdatesRejectUnknownID(t *testing.T) {
	r, _, token := newTestRouter(t)

	w := doJSON(r, http.MethodPatch, "/admin/modifier-groups/999", token, `{"name":"x"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodPatch, "/admin/modifier-items/999", token, `{"name":"x"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestModifierUpdatesNeedAdminRole(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doJSON(r, http.MethodPatch, "/admin/modifier-groups/1", "", `{"name":"x"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	staffToken, err := utils.GenerateToken(2, "staff", "test-secret", time.Hour)
	require.NoError(t, err)
	w = doJSON(r, http.MethodPatch, "/admin/modifier-groups/1", staffToken, `{"name":"x"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
