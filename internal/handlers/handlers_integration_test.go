package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"dealership/internal/handlers"
	"dealership/internal/middleware"
	"dealership/internal/models"
	"dealership/internal/repositories"
	"dealership/internal/services"
	"dealership/pkg/uploads"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	testAdminEmail    = "admin@example.com"
	testAdminPassword = "secret123"
)

type testEnv struct {
	app      *fiber.App
	token    string
	userRepo repositories.UserRepository
	auth     *services.AuthService
}

// setupApp wires the full application against an in-memory database, the
// same way the composition root does, and logs in the seeded admin.
func setupApp(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Vehicle{}, &models.Message{}, &models.Review{}, &models.User{}))

	vehicleRepo := repositories.NewGORMVehicleRepository(db)
	messageRepo := repositories.NewGORMMessageRepository(db)
	reviewRepo := repositories.NewGORMReviewRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)

	inventoryService := services.NewInventoryService(vehicleRepo)
	vehicleService := services.NewVehicleService(vehicleRepo, nil)
	contactService := services.NewContactService(messageRepo, vehicleRepo)
	reviewService := services.NewReviewService(reviewRepo)
	authService := services.NewAuthService(userRepo, "test-secret")
	require.NoError(t, authService.EnsureAdmin(testAdminEmail, testAdminPassword))

	uploader, err := uploads.NewLocalUploader(t.TempDir(), "/uploads")
	require.NoError(t, err)

	app := fiber.New()
	apiV1 := app.Group("/api/v1")

	handlers.NewAuthHandler(authService).RegisterRoutes(apiV1)
	handlers.NewVehicleHandler(inventoryService).RegisterRoutes(apiV1)
	contactHandler := handlers.NewContactHandler(contactService)
	contactHandler.RegisterPublicRoutes(apiV1)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	reviewHandler.RegisterPublicRoutes(apiV1)

	admin := apiV1.Group("/admin", middleware.AuthRequired(authService), middleware.AdminRequired())
	handlers.NewAdminVehicleHandler(inventoryService, vehicleService).RegisterRoutes(admin)
	contactHandler.RegisterAdminRoutes(admin)
	reviewHandler.RegisterAdminRoutes(admin)
	handlers.NewUploadHandler(uploader).RegisterRoutes(admin)

	token, err := authService.Login(testAdminEmail, testAdminPassword)
	require.NoError(t, err)

	return &testEnv{app: app, token: token, userRepo: userRepo, auth: authService}
}

// request performs one JSON request. An empty token sends no Authorization
// header.
func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func assertNoCacheHeaders(t *testing.T, resp *http.Response) {
	t.Helper()
	assert.Equal(t, "no-store, no-cache, must-revalidate, proxy-revalidate", resp.Header.Get("Cache-Control"))
	assert.Equal(t, "no-cache", resp.Header.Get("Pragma"))
	assert.Equal(t, "0", resp.Header.Get("Expires"))
	assert.Equal(t, "no-store", resp.Header.Get("Surrogate-Control"))
}

func vehiclePayload(vin string) map[string]interface{} {
	return map[string]interface{}{
		"type":     "car",
		"make":     "Honda",
		"model":    "Civic",
		"year":     2020,
		"price":    15000,
		"mileage":  42000,
		"vin":      vin,
		"features": "ABS\nPower Steering\nAC",
	}
}

type listResponse struct {
	Vehicles   []models.Vehicle    `json:"vehicles"`
	Pagination services.Pagination `json:"pagination"`
}

func TestLogin(t *testing.T) {
	env := setupApp(t)

	resp := env.request(t, fiber.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": testAdminEmail, "password": testAdminPassword,
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var body map[string]string
	decodeBody(t, resp, &body)
	assert.NotEmpty(t, body["token"])

	resp = env.request(t, fiber.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": testAdminEmail, "password": "wrong",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// Malformed payloads fail validation, not authentication.
	resp = env.request(t, fiber.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "not-an-email",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAdminRoutesRequireAdminToken(t *testing.T) {
	env := setupApp(t)

	resp := env.request(t, fiber.MethodGet, "/api/v1/admin/vehicles", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = env.request(t, fiber.MethodGet, "/api/v1/admin/vehicles", "garbage-token", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// A valid token without the admin role is rejected too.
	hashed, err := bcrypt.GenerateFromPassword([]byte("pass1234"), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, env.userRepo.Create(&models.User{
		Email:    "staff@example.com",
		Password: string(hashed),
		Role:     "staff",
	}))
	staffToken, err := env.auth.Login("staff@example.com", "pass1234")
	require.NoError(t, err)

	resp = env.request(t, fiber.MethodGet, "/api/v1/admin/vehicles", staffToken, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = env.request(t, fiber.MethodGet, "/api/v1/admin/vehicles", env.token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestVehicleSaleLifecycle(t *testing.T) {
	env := setupApp(t)

	// Create with a legacy flag and newline-separated features.
	payload := vehiclePayload("1HGBH41JXMN109186")
	payload["isFeatured"] = "yes"
	resp := env.request(t, fiber.MethodPost, "/api/v1/admin/vehicles", env.token, payload)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created models.Vehicle
	decodeBody(t, resp, &created)
	require.NotEmpty(t, created.ID)
	assert.True(t, created.Featured, "legacy isFeatured must land in featured")
	assert.Equal(t, models.StringList{"ABS", "Power Steering", "AC"}, created.Features)
	assert.False(t, created.CreatedAt.IsZero())

	// Public catalog shows it and forbids caching.
	resp = env.request(t, fiber.MethodGet, "/api/v1/vehicles", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assertNoCacheHeaders(t, resp)
	var listing listResponse
	decodeBody(t, resp, &listing)
	require.Len(t, listing.Vehicles, 1)
	assert.Equal(t, int64(1), listing.Pagination.Total)

	// Mark sold.
	resp = env.request(t, fiber.MethodPut, "/api/v1/admin/vehicles/"+created.ID, env.token, map[string]interface{}{
		"sold": true,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assertNoCacheHeaders(t, resp)
	var updated models.Vehicle
	decodeBody(t, resp, &updated)
	assert.True(t, updated.Sold)

	// Gone from the default catalog, present when sold is requested.
	resp = env.request(t, fiber.MethodGet, "/api/v1/vehicles", "", nil)
	decodeBody(t, resp, &listing)
	assert.Empty(t, listing.Vehicles)
	assert.Equal(t, int64(0), listing.Pagination.Total)

	resp = env.request(t, fiber.MethodGet, "/api/v1/vehicles?includeSold=true", "", nil)
	decodeBody(t, resp, &listing)
	assert.Len(t, listing.Vehicles, 1)

	// The public detail page reports the listing gone for good.
	resp = env.request(t, fiber.MethodGet, "/api/v1/vehicles/"+created.ID, "", nil)
	assert.Equal(t, fiber.StatusGone, resp.StatusCode)
	var errBody map[string]string
	decodeBody(t, resp, &errBody)
	assert.Equal(t, "Vehicle is no longer available", errBody["error"])

	// The back office still sees it.
	resp = env.request(t, fiber.MethodGet, "/api/v1/admin/vehicles/"+created.ID, env.token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Delete and confirm it is gone everywhere.
	resp = env.request(t, fiber.MethodDelete, "/api/v1/admin/vehicles/"+created.ID, env.token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp = env.request(t, fiber.MethodGet, "/api/v1/admin/vehicles/"+created.ID, env.token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestVehicleCreateRejections(t *testing.T) {
	env := setupApp(t)

	// Required fields.
	resp := env.request(t, fiber.MethodPost, "/api/v1/admin/vehicles", env.token, map[string]interface{}{
		"type": "car", "model": "Civic", "price": 0,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	var errBody map[string]string
	decodeBody(t, resp, &errBody)
	assert.Contains(t, errBody["error"], "missing required fields")

	// Duplicate VIN.
	resp = env.request(t, fiber.MethodPost, "/api/v1/admin/vehicles", env.token, vehiclePayload("DUPE"))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = env.request(t, fiber.MethodPost, "/api/v1/admin/vehicles", env.token, vehiclePayload("DUPE"))
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	decodeBody(t, resp, &errBody)
	assert.Equal(t, "A vehicle with this VIN already exists", errBody["error"])
}

func TestFeaturedListingServesNewest(t *testing.T) {
	env := setupApp(t)

	var ids []string
	for i := 0; i < 6; i++ {
		resp := env.request(t, fiber.MethodPost, "/api/v1/admin/vehicles", env.token, vehiclePayload(fmt.Sprintf("VIN%03d", i)))
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
		var created models.Vehicle
		decodeBody(t, resp, &created)
		ids = append(ids, created.ID)
	}

	resp := env.request(t, fiber.MethodGet, "/api/v1/vehicles?featured=true", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var listing listResponse
	decodeBody(t, resp, &listing)
	require.Len(t, listing.Vehicles, 4)
	// The window still ignores the stored featured flag; none were flagged.
	for _, v := range listing.Vehicles {
		assert.Contains(t, ids[2:], v.ID)
	}
	// The pagination total keeps describing the full catalog.
	assert.Equal(t, int64(6), listing.Pagination.Total)
}

func TestListingCoercesBadQueryValues(t *testing.T) {
	env := setupApp(t)

	resp := env.request(t, fiber.MethodPost, "/api/v1/admin/vehicles", env.token, vehiclePayload("Q1"))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Out-of-range and unparsable paging values coerce to the defaults.
	for _, query := range []string{"page=0&limit=-5", "page=abc&limit=abc", "page=-3"} {
		resp = env.request(t, fiber.MethodGet, "/api/v1/vehicles?"+query, "", nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode, query)
		var listing listResponse
		decodeBody(t, resp, &listing)
		assert.Equal(t, 1, listing.Pagination.Page, query)
		assert.Equal(t, repositories.DefaultPageLimit, listing.Pagination.Limit, query)
		assert.Len(t, listing.Vehicles, 1, query)
	}

	// Unparsable numeric bounds are treated as absent, not as errors.
	resp = env.request(t, fiber.MethodGet, "/api/v1/vehicles?minPrice=cheap&maxYear=new", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var listing listResponse
	decodeBody(t, resp, &listing)
	assert.Len(t, listing.Vehicles, 1)
}

func TestFeaturedListingRespectsFilters(t *testing.T) {
	env := setupApp(t)

	for i := 0; i < 4; i++ {
		payload := vehiclePayload(fmt.Sprintf("MOTO%d", i))
		payload["type"] = "motorcycle"
		payload["price"] = 8000
		resp := env.request(t, fiber.MethodPost, "/api/v1/admin/vehicles", env.token, payload)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}
	for i := 0; i < 4; i++ {
		resp := env.request(t, fiber.MethodPost, "/api/v1/admin/vehicles", env.token, vehiclePayload(fmt.Sprintf("CAR%d", i)))
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	// The cars are newer, but the type filter still scopes the window.
	resp := env.request(t, fiber.MethodGet, "/api/v1/vehicles?featured=true&type=motorcycle", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var listing listResponse
	decodeBody(t, resp, &listing)
	require.Len(t, listing.Vehicles, 4)
	for _, v := range listing.Vehicles {
		assert.Equal(t, models.VehicleTypeMotorcycle, v.Type)
	}
	assert.Equal(t, int64(4), listing.Pagination.Total)
}

func TestContactMessageLifecycle(t *testing.T) {
	env := setupApp(t)

	resp := env.request(t, fiber.MethodPost, "/api/v1/admin/vehicles", env.token, vehiclePayload("C1"))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var vehicle models.Vehicle
	decodeBody(t, resp, &vehicle)

	resp = env.request(t, fiber.MethodPost, "/api/v1/contact", "", map[string]string{
		"name":    "Jordan Smith",
		"email":   "jordan@example.com",
		"subject": "Test drive",
		"message": "Is it still available?",
		"vehicle": "2020 Honda Civic",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var message models.Message
	decodeBody(t, resp, &message)
	require.NotNil(t, message.VehicleID)
	assert.Equal(t, vehicle.ID, *message.VehicleID)

	// Invalid submissions are rejected.
	resp = env.request(t, fiber.MethodPost, "/api/v1/contact", "", map[string]string{
		"name": "No Email",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Deleting the vehicle leaves the message with its dangling reference.
	resp = env.request(t, fiber.MethodDelete, "/api/v1/admin/vehicles/"+vehicle.ID, env.token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = env.request(t, fiber.MethodGet, "/api/v1/admin/messages/"+message.ID, env.token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var stored models.Message
	decodeBody(t, resp, &stored)
	require.NotNil(t, stored.VehicleID)
	assert.Equal(t, vehicle.ID, *stored.VehicleID)
	assert.True(t, stored.IsRead, "viewing a message marks it read")

	resp = env.request(t, fiber.MethodGet, "/api/v1/admin/messages?status=unread", env.token, nil)
	var unread []models.Message
	decodeBody(t, resp, &unread)
	assert.Empty(t, unread)
}

func TestReviewModeration(t *testing.T) {
	env := setupApp(t)

	resp := env.request(t, fiber.MethodPost, "/api/v1/reviews", "", map[string]interface{}{
		"name":    "Jordan Smith",
		"email":   "jordan@example.com",
		"rating":  5,
		"title":   "Great service",
		"comment": "Smooth purchase from start to finish.",
		// Client-supplied approval is ignored.
		"isApproved": true,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var review models.Review
	decodeBody(t, resp, &review)
	require.NotEmpty(t, review.ID)
	assert.False(t, review.IsApproved)

	// Not public until approved.
	resp = env.request(t, fiber.MethodGet, "/api/v1/reviews", "", nil)
	var public []models.Review
	decodeBody(t, resp, &public)
	assert.Empty(t, public)

	resp = env.request(t, fiber.MethodPut, "/api/v1/admin/reviews/"+review.ID+"/approve", env.token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = env.request(t, fiber.MethodGet, "/api/v1/reviews", "", nil)
	decodeBody(t, resp, &public)
	require.Len(t, public, 1)
	assert.True(t, public[0].IsApproved)

	resp = env.request(t, fiber.MethodDelete, "/api/v1/admin/reviews/"+review.ID, env.token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp = env.request(t, fiber.MethodGet, "/api/v1/reviews", "", nil)
	decodeBody(t, resp, &public)
	assert.Empty(t, public)
}

func TestUpload(t *testing.T) {
	env := setupApp(t)

	resp := env.request(t, fiber.MethodPost, "/api/v1/admin/upload", env.token, map[string]string{
		"image": "data:image/png;base64,aGVsbG8gd29ybGQ=",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Contains(t, body["url"], "/uploads/")
	assert.Contains(t, body["url"], ".png")

	resp = env.request(t, fiber.MethodPost, "/api/v1/admin/upload", env.token, map[string]string{
		"image": "not-a-data-url",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = env.request(t, fiber.MethodPost, "/api/v1/admin/upload", env.token, map[string]string{})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
