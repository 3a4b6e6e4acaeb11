package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/KESA-RIKIN/zero-hunger-platform/config"
	"github.com/KESA-RIKIN/zero-hunger-platform/handlers"
	"github.com/KESA-RIKIN/zero-hunger-platform/lifecycle"
	"github.com/KESA-RIKIN/zero-hunger-platform/middleware"
	"github.com/KESA-RIKIN/zero-hunger-platform/models"
	"github.com/KESA-RIKIN/zero-hunger-platform/routes"
	"github.com/KESA-RIKIN/zero-hunger-platform/store"
)

// setupServer wires a fresh in-memory database, the gorm store and a router,
// mirroring main's boot sequence.
func setupServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.User{}, &models.Donation{}, &models.DonationStatusHistory{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	config.SetDB(db)
	handlers.SetStore(store.NewGormStore(db))

	r := gin.New()
	routes.SetupRoutes(r)
	return r, db
}

// lifecycleController gives tests direct access to the same controller the
// handlers use, for seeding records past creation.
func lifecycleController(db *gorm.DB) *lifecycle.Controller {
	return lifecycle.NewController(store.NewGormStore(db))
}

func createUser(t *testing.T, db *gorm.DB, name string, role models.UserRole) (models.User, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: string(hash),
		Role:         role,
	}
	require.NoError(t, db.Create(&user).Error)
	token, err := middleware.GenerateToken(&user)
	require.NoError(t, err)
	return user, token
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
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

func parseObject(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func parseArray(t *testing.T, w *httptest.ResponseRecorder) []interface{} {
	t.Helper()
	var out []interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// postDonation creates a donation over HTTP and returns its id.
func postDonation(t *testing.T, r *gin.Engine, donorToken string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/donations", donorToken, map[string]interface{}{
		"orgName":  "Annapurna Kitchen",
		"foodType": "Veg Biryani",
		"quantity": 40,
		"location": "12 MG Road, Hyderabad",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	return parseObject(t, w)["id"].(string)
}
