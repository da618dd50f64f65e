package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fittrackapp/fittrack-backend/internal/apps"
	"github.com/fittrackapp/fittrack-backend/internal/apps/nutrition"
	"github.com/fittrackapp/fittrack-backend/internal/apps/workouts"
	"github.com/fittrackapp/fittrack-backend/internal/config"
	"github.com/fittrackapp/fittrack-backend/internal/database"
	"github.com/fittrackapp/fittrack-backend/internal/handlers"
	"github.com/fittrackapp/fittrack-backend/internal/models"
	"github.com/fittrackapp/fittrack-backend/internal/routes"
	"github.com/fittrackapp/fittrack-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupApp wires the full Fiber app over an in-memory SQLite database.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&workouts.Workout{}, &workouts.Exercise{},
		&nutrition.Food{}, &nutrition.MealEntry{},
	))
	database.DB = db

	cfg := &config.Config{
		JWTSecret:   "test_jwt_secret",
		JWTExpiry:   24 * time.Hour,
		FrontendURL: "http://localhost:3001",
	}

	authService := services.NewAuthService(db, cfg)
	oauthService := services.NewGoogleOAuthService(cfg)

	authHandler := handlers.NewAuthHandler(authService, oauthService, cfg)
	healthHandler := handlers.NewHealthHandler()

	app := fiber.New()
	routes.Setup(app, cfg, db, authHandler, healthHandler, []apps.Plugin{
		workouts.New(),
		nutrition.New(),
	})

	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func signupAndLogin(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/auth/signup", "", map[string]string{
		"email": email, "password": "password123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/auth/login", "", map[string]string{
		"email": email, "password": "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var login map[string]string
	decode(t, resp, &login)
	require.NotEmpty(t, login["access_token"])
	return login["access_token"]
}

func TestSignupAndLogin(t *testing.T) {
	app := setupApp(t)

	resp := doJSON(t, app, http.MethodPost, "/auth/signup", "", map[string]string{
		"email": "alice@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var signup map[string]interface{}
	decode(t, resp, &signup)
	assert.Equal(t, "alice@example.com", signup["email"])
	assert.NotEmpty(t, signup["id"])
	assert.NotContains(t, signup, "password")

	// Duplicate email
	resp = doJSON(t, app, http.MethodPost, "/auth/signup", "", map[string]string{
		"email": "alice@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Login sets the session cookie and returns the token
	resp = doJSON(t, app, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "alice@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var cookie string
	for _, c := range resp.Cookies() {
		if c.Name == "access_token" {
			cookie = c.Value
			assert.True(t, c.HttpOnly)
		}
	}
	assert.NotEmpty(t, cookie)

	var login map[string]string
	decode(t, resp, &login)
	assert.Equal(t, cookie, login["access_token"])

	// Wrong password
	resp = doJSON(t, app, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "alice@example.com", "password": "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestProfileAndSessionTransport(t *testing.T) {
	app := setupApp(t)
	token := signupAndLogin(t, app, "alice@example.com")

	// Bearer header
	resp := doJSON(t, app, http.MethodGet, "/auth/profile", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var profile map[string]interface{}
	decode(t, resp, &profile)
	assert.Equal(t, "alice@example.com", profile["email"])

	// Cookie transport
	req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// No token
	resp = doJSON(t, app, http.MethodGet, "/auth/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Tampered token
	resp = doJSON(t, app, http.MethodGet, "/auth/profile", token+"x", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Logout clears the cookie
	resp = doJSON(t, app, http.MethodPost, "/auth/logout", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	for _, c := range resp.Cookies() {
		if c.Name == "access_token" {
			assert.Empty(t, c.Value)
		}
	}
	resp.Body.Close()
}

func TestWorkoutLifecycle(t *testing.T) {
	app := setupApp(t)
	token := signupAndLogin(t, app, "alice@example.com")

	created := map[string]interface{}{}
	resp := doJSON(t, app, http.MethodPost, "/workouts", token, map[string]interface{}{
		"name": "Leg Day",
		"date": time.Now().Format(time.RFC3339),
		"exercises": []map[string]interface{}{
			{"name": "Squat", "sets": 5, "reps": 5, "weight": 100},
			{"name": "Lunge", "sets": 3, "reps": 12, "weight": 20},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &created)
	workoutID := created["id"].(string)
	require.NotEmpty(t, workoutID)
	assert.Len(t, created["exercises"], 2)

	// List
	resp = doJSON(t, app, http.MethodGet, "/workouts", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []map[string]interface{}
	decode(t, resp, &list)
	require.Len(t, list, 1)

	// Replace swaps the exercise set
	resp = doJSON(t, app, http.MethodPatch, "/workouts/"+workoutID, token, map[string]interface{}{
		"name": "Push Day",
		"date": time.Now().Format(time.RFC3339),
		"exercises": []map[string]interface{}{
			{"name": "Bench Press", "sets": 4, "reps": 8, "weight": 80},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated map[string]interface{}
	decode(t, resp, &updated)
	assert.Equal(t, "Push Day", updated["name"])
	assert.Len(t, updated["exercises"], 1)

	// Delete returns the record; a later fetch is denied
	resp = doJSON(t, app, http.MethodDelete, "/workouts/"+workoutID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/workouts/"+workoutID, token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestWorkoutOwnershipDenials(t *testing.T) {
	app := setupApp(t)
	aliceToken := signupAndLogin(t, app, "alice@example.com")
	bobToken := signupAndLogin(t, app, "bob@example.com")

	var created map[string]interface{}
	resp := doJSON(t, app, http.MethodPost, "/workouts", aliceToken, map[string]interface{}{
		"name":      "Leg Day",
		"date":      time.Now().Format(time.RFC3339),
		"exercises": []map[string]interface{}{{"name": "Squat", "sets": 5, "reps": 5, "weight": 100}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &created)
	workoutID := created["id"].(string)

	for _, tc := range []struct {
		method string
		body   interface{}
	}{
		{http.MethodGet, nil},
		{http.MethodPatch, map[string]interface{}{"name": "Stolen", "date": time.Now().Format(time.RFC3339), "exercises": []map[string]interface{}{}}},
		{http.MethodDelete, nil},
	} {
		resp := doJSON(t, app, tc.method, "/workouts/"+workoutID, bobToken, tc.body)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, "%s must be denied", tc.method)
		resp.Body.Close()
	}

	// Bob sees none of Alice's workouts
	resp = doJSON(t, app, http.MethodGet, "/workouts", bobToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var bobList []map[string]interface{}
	decode(t, resp, &bobList)
	assert.Empty(t, bobList)

	// Alice still has hers
	resp = doJSON(t, app, http.MethodGet, "/workouts/"+workoutID, aliceToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestNutritionEndToEnd(t *testing.T) {
	app := setupApp(t)
	aliceToken := signupAndLogin(t, app, "alice@example.com")
	bobToken := signupAndLogin(t, app, "bob@example.com")

	// Alice creates "Oats" (200 kcal, 10 g protein per cup)
	var oats map[string]interface{}
	resp := doJSON(t, app, http.MethodPost, "/nutrition/food", aliceToken, map[string]interface{}{
		"name": "Oats", "calories": 200, "protein": 10, "servingSize": "1 cup",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &oats)
	foodID := oats["id"].(string)

	// Bob cannot log Alice's food
	resp = doJSON(t, app, http.MethodPost, "/nutrition/meal", bobToken, map[string]interface{}{
		"foodId": foodID, "date": time.Now().Format(time.RFC3339), "mealType": "Breakfast", "quantity": 1,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// Alice logs two servings
	var entry map[string]interface{}
	resp = doJSON(t, app, http.MethodPost, "/nutrition/meal", aliceToken, map[string]interface{}{
		"foodId": foodID, "date": time.Now().Format(time.RFC3339), "mealType": "Breakfast", "quantity": 2,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &entry)
	assert.EqualValues(t, 400, entry["calories"])
	assert.EqualValues(t, 20, entry["protein"])

	// Daily log returns exactly that entry, joined with the food
	resp = doJSON(t, app, http.MethodGet, "/nutrition/log?date="+time.Now().Format("2006-01-02"), aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var log []map[string]interface{}
	decode(t, resp, &log)
	require.Len(t, log, 1)
	food := log[0]["food"].(map[string]interface{})
	assert.Equal(t, "Oats", food["name"])

	// Food search is scoped to the caller
	resp = doJSON(t, app, http.MethodGet, "/nutrition/food?q=oat", bobToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var bobFoods []map[string]interface{}
	decode(t, resp, &bobFoods)
	assert.Empty(t, bobFoods)

	// Goals round-trip
	resp = doJSON(t, app, http.MethodPatch, "/nutrition/goals", aliceToken, map[string]interface{}{
		"calorieGoal": 2200,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var goals map[string]interface{}
	decode(t, resp, &goals)
	assert.EqualValues(t, 2200, goals["calorieGoal"])
	assert.Nil(t, goals["proteinGoal"])

	// Default summary: 7 contiguous daily rows ending today
	resp = doJSON(t, app, http.MethodGet, "/nutrition/stats/summary", aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rows []map[string]interface{}
	decode(t, resp, &rows)
	require.Len(t, rows, 7)
	assert.Equal(t, time.Now().Format("2006-01-02"), rows[6]["date"])
	assert.EqualValues(t, 400, rows[6]["calories"])
}

func TestValidationRejectsBadBodies(t *testing.T) {
	app := setupApp(t)
	token := signupAndLogin(t, app, "alice@example.com")

	// Signup with a short password
	resp := doJSON(t, app, http.MethodPost, "/auth/signup", "", map[string]string{
		"email": "short@example.com", "password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Workout without a name
	resp = doJSON(t, app, http.MethodPost, "/workouts", token, map[string]interface{}{
		"date": time.Now().Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Meal with a non-positive quantity
	resp = doJSON(t, app, http.MethodPost, "/nutrition/meal", token, map[string]interface{}{
		"foodId": "not-a-uuid", "date": time.Now().Format(time.RFC3339), "mealType": "Lunch", "quantity": 0,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestHealth(t *testing.T) {
	app := setupApp(t)

	resp := doJSON(t, app, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var health map[string]interface{}
	decode(t, resp, &health)
	assert.Equal(t, "healthy", health["status"])
	assert.Equal(t, "ok", health["db"])
}
