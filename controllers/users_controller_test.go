package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func TestLogin(t *testing.T) {
	// Setup test environment
	gin.SetMode(gin.TestMode)
	gormDB, mock, cleanup := setupMockDB(t)
	defer cleanup()

	// Setup router
	router := gin.New()
	router.POST("/login", Login(gormDB))

	hash, err := bcrypt.GenerateFromPassword([]byte("testpass123"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	t.Run("Log in successfully", func(t *testing.T) {
		fmt.Println("Request: POST /login")

		mock.ExpectQuery(`SELECT \* FROM "users"`).
			WithArgs("skater@example.com", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "username", "password_hash"}).
				AddRow(7, "skater@example.com", "tony", string(hash)))

		body, _ := json.Marshal(gin.H{"email": "skater@example.com", "password": "testpass123"})
		req, _ := http.NewRequest("POST", "/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		fmt.Println("Response:", w.Body.String())
		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &response)
		assert.NotEmpty(t, response["token"])
		assert.Equal(t, "tony", response["username"])
		assert.Equal(t, float64(7), response["user_id"])
	})

	t.Run("Log in with wrong password", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM "users"`).
			WithArgs("skater@example.com", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "username", "password_hash"}).
				AddRow(7, "skater@example.com", "tony", string(hash)))

		body, _ := json.Marshal(gin.H{"email": "skater@example.com", "password": "wrongpass"})
		req, _ := http.NewRequest("POST", "/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Log in with unknown email", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM "users"`).
			WithArgs("nobody@example.com", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		body, _ := json.Marshal(gin.H{"email": "nobody@example.com", "password": "testpass123"})
		req, _ := http.NewRequest("POST", "/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Log in with empty fields", func(t *testing.T) {
		body, _ := json.Marshal(gin.H{"email": "", "password": ""})
		req, _ := http.NewRequest("POST", "/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserPublicInfo(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gormDB, mock, cleanup := setupMockDB(t)
	defer cleanup()

	router := gin.New()
	router.GET("/users/:username", GetUserPublicInfo(gormDB))

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WithArgs("tony", 1).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "username", "display_name", "total_points", "games_played", "games_won",
		}).AddRow(7, "tony", "Tony H.", 150, 4, 2))

	req, _ := http.NewRequest("GET", "/users/tony", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "tony", response["username"])
	assert.Equal(t, float64(150), response["total_points"])
	// Email never leaks through the public profile
	assert.NotContains(t, response, "email")

	assert.NoError(t, mock.ExpectationsWereMet())
}
