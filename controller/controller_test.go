package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"library-api/cache"
	"library-api/middleware"
	"library-api/model"
)

const testSecret = "test-secret"

type testEnv struct {
	app   *fiber.App
	db    *gorm.DB
	cache *cache.BorrowedCache
	redis *miniredis.Miniredis
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Book{}, &model.Reader{}, &model.BorrowedBook{}))
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	snapshot := cache.NewWithClient(rdb)
	logger := zap.NewNop()

	app := fiber.New()
	auth := middleware.AuthRequired(testSecret)
	admin := middleware.AdminRequired()

	ac := &AuthController{DB: db, JWTSecret: testSecret, Log: logger}
	app.Post("/auth/register", ac.Register)
	app.Post("/auth/login", ac.Login)

	app.Post("/books", auth, (&BookController{DB: db, Log: logger}).Create)
	app.Post("/readers", (&ReaderController{DB: db, Log: logger}).Create)

	brc := &BorrowedController{DB: db, Cache: snapshot, Log: logger}
	app.Get("/borrowed", auth, brc.List)
	app.Post("/borrowed/borrow", auth, brc.Borrow)
	app.Put("/borrowed/return/:id", auth, admin, brc.Return)

	return &testEnv{app: app, db: db, cache: snapshot, redis: mr}
}

func testToken(t *testing.T, id uint, role model.Role, ttl time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"id":   id,
		"role": role,
		"exp":  time.Now().Add(ttl).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func jsonRequest(t *testing.T, method, target string, body any, token string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func decodeMap(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func decodeList(t *testing.T, resp *http.Response) []model.BorrowedBook {
	t.Helper()
	defer resp.Body.Close()
	var out []model.BorrowedBook
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}
