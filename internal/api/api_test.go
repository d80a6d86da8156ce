package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"hoststore/internal/auth"
	storedb "hoststore/internal/db"
	"hoststore/internal/domain"
	"hoststore/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// testSecret signs JWTs in tests
const testSecret = "test-secret"

// testPassword is the plaintext behind every seeded user
const testPassword = "password123"

// newTestDB opens an isolated in-memory database with the full schema.
// MaxOpenConns(1) pins the pool to a single connection so every query sees
// the same in-memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(storedb.Models()...))
	return db
}

// newTestRouter wires the same routes as cmd/server, without Redis (the
// cache is best-effort and handlers tolerate a nil client)
func newTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	root := r.Group("/api")
	root.POST("/auth/register", RegisterHandler(db))
	root.POST("/auth/login", LoginHandler(db, testSecret, time.Hour))
	root.POST("/auth/logout", LogoutHandler(db))
	root.GET("/store", ListStoreItemsHandler(db))
	root.GET("/store/:id", GetStoreItemHandler(db))
	root.GET("/stats", StatsHandler(db, nil))

	authed := root.Group("", middleware.Authenticate(db, testSecret))
	authed.POST("/orders", CreateOrderHandler(db))
	authed.GET("/orders", ListOrdersHandler(db))
	authed.GET("/orders/:id/invoice", OrderInvoiceHandler(db))
	authed.POST("/wallet/topup", TopUpHandler(db, nil))
	authed.GET("/wallet/transactions", ListWalletTransactionsHandler(db, nil))
	authed.GET("/payment-methods", ListPaymentMethodsHandler(db, nil))

	adminGroup := authed.Group("/admin", middleware.RequireRoles(domain.RoleAdmin, domain.RoleOwner))
	adminGroup.GET("/orders", ListAllOrdersHandler(db))
	adminGroup.PUT("/orders", UpdateOrderStatusHandler(db))

	ownerGroup := authed.Group("/owner")
	ownerGroup.GET("/payment-settings",
		middleware.RequireRoles(domain.RoleOwner, domain.RoleAdmin), GetPaymentSettingsHandler(db))
	ownerGroup.POST("/payment-settings",
		middleware.RequireRoles(domain.RoleOwner), UpsertPaymentSettingsHandler(db, nil))
	ownerGroup.POST("/payment-settings/banks",
		middleware.RequireRoles(domain.RoleOwner), CreateBankAccountHandler(db, nil))
	ownerGroup.PUT("/payment-settings/banks/:id",
		middleware.RequireRoles(domain.RoleOwner), ToggleBankAccountHandler(db, nil))
	ownerGroup.POST("/payment-settings/ewallets",
		middleware.RequireRoles(domain.RoleOwner), CreateEWalletHandler(db, nil))
	ownerGroup.PUT("/payment-settings/ewallets/:id",
		middleware.RequireRoles(domain.RoleOwner), ToggleEWalletHandler(db, nil))
	return r
}

// seedTestUser inserts a user with the shared test password
func seedTestUser(t *testing.T, db *gorm.DB, email, role string, balance int64) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	user := domain.User{
		Email:    email,
		Name:     "Test " + role,
		Password: string(hash),
		Role:     role,
		IsActive: true,
		Balance:  balance,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

// seedTestItem inserts a catalog item
func seedTestItem(t *testing.T, db *gorm.DB, title string, price int64, category string, active bool) *domain.StoreItem {
	t.Helper()
	item := domain.StoreItem{
		Title:    title,
		Price:    price,
		Category: category,
		IsActive: active,
	}
	require.NoError(t, db.Create(&item).Error)
	if !active {
		// The model's `default:true` makes GORM skip a false zero value on
		// insert, so force the column explicitly
		require.NoError(t, db.Model(&item).Update("is_active", false).Error)
	}
	return &item
}

// tokenFor returns a signed bearer JWT for the user
func tokenFor(t *testing.T, u *domain.User) string {
	t.Helper()
	token, err := auth.GenerateJWT(u.ID, u.Role, testSecret, time.Hour)
	require.NoError(t, err)
	return token
}

// doJSON performs a JSON request against the router, with optional bearer token
func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decodeBody unmarshals a response body into a generic map
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
