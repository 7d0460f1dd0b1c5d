package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"khanza/internal/auth"
	intconfig "khanza/internal/config"
	h "khanza/internal/http/handlers"
	"khanza/internal/ratelimit"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestLoginThenListBookings(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	tokens := auth.NewTokenManager("router-secret", time.Hour)
	hd := h.Handler{DB: db}
	hd.Auth.Users.DB = db
	hd.Auth.Tokens = tokens
	hd.Bookings.DB = db
	hd.Bookings.Bookings.DB = db

	r := NewRouter(intconfig.Env{}, Deps{Handler: hd, Tokens: tokens, Limiter: ratelimit.NewMemory(time.Minute)})

	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia123"), bcrypt.MinCost)
	require.NoError(t, err)
	userRow := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "email", "password_hash", "role"}).AddRow(1, "admin@khanza.id", string(hash), "admin")
	}

	login := func(password string) *httptest.ResponseRecorder {
		body := `{"email":"admin@khanza.id","password":"` + password + `"}`
		req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	mock.ExpectQuery("FROM users").WillReturnRows(userRow())
	w := login("salah")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotContains(t, w.Body.String(), "token")

	mock.ExpectQuery("FROM users").WillReturnRows(userRow())
	w = login("rahasia123")
	require.Equal(t, http.StatusOK, w.Code)
	var res struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.NotEmpty(t, res.Token)

	// without a token the admin list is refused
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/bookings", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	now := time.Now()
	mock.ExpectQuery("FROM bookings b").WillReturnRows(sqlmock.NewRows(
		[]string{"id", "name", "email", "phone", "vehicle_info", "service_id", "scheduled_at", "status", "voucher_code", "created_at", "title", "discount_percent"}).
		AddRow(1, "Budi", "budi@mail.com", "0812", "Civic", 2, now, "pending", nil, now, "Poles", nil))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/bookings", nil)
	req.Header.Set("Authorization", "Bearer "+res.Token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"service_title":"Poles"`)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogWritesRequireToken(t *testing.T) {
	tokens := auth.NewTokenManager("router-secret", time.Hour)
	r := NewRouter(intconfig.Env{}, Deps{Tokens: tokens})

	req := httptest.NewRequest(http.MethodPost, "/api/services", strings.NewReader(`{"title":"Poles"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
