package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"lucky-tours-api/entities"
	"lucky-tours-api/pkg/jwt"
	"lucky-tours-api/pkg/user"
)

type fixture struct {
	app        *fiber.App
	jwtService jwt.JWTService
	db         *gorm.DB
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.User{}))

	jwtService := jwt.NewJWTService()
	m := NewMiddleware(user.NewUserRepository(db))

	app := fiber.New()
	app.Get("/protected", m.AuthMiddleware(jwtService), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": c.Locals("user_id"), "role": c.Locals("role")})
	})
	app.Get("/admin-only",
		m.AuthMiddleware(jwtService),
		m.OnlyRoles(entities.RoleAdmin, entities.RoleSuperadmin),
		func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		})

	return &fixture{app: app, jwtService: jwtService, db: db}
}

func (f *fixture) createUser(t *testing.T, role string, active bool) *entities.User {
	t.Helper()
	suffix := uuid.NewString()[:8]
	u := &entities.User{
		ID:                uuid.New(),
		Name:              "Test " + role,
		Email:             suffix + "@example.com",
		Phone:             "+91" + suffix,
		Password:          "x",
		VirtualCardNumber: "HLT-2026-" + suffix,
		Role:              role,
		IsActive:          active,
	}
	require.NoError(t, f.db.Create(u).Error)
	return u
}

func (f *fixture) request(t *testing.T, path, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	f := newFixture(t)

	resp := f.request(t, "/protected", "")
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareRejectsGarbageToken(t *testing.T) {
	f := newFixture(t)

	resp := f.request(t, "/protected", "not.a.token")
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	f := newFixture(t)
	u := f.createUser(t, entities.RoleUser, true)

	token := f.jwtService.GenerateTokenUser(u.ID.String(), u.Role)
	resp := f.request(t, "/protected", token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthMiddlewareAcceptsCookieToken(t *testing.T) {
	f := newFixture(t)
	u := f.createUser(t, entities.RoleUser, true)

	token := f.jwtService.GenerateTokenUser(u.ID.String(), u.Role)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthMiddlewareRejectsDeactivatedUser(t *testing.T) {
	f := newFixture(t)
	u := f.createUser(t, entities.RoleUser, false)

	// The token itself is still valid; the live account check rejects it.
	token := f.jwtService.GenerateTokenUser(u.ID.String(), u.Role)
	resp := f.request(t, "/protected", token)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareRejectsDeletedUser(t *testing.T) {
	f := newFixture(t)

	token := f.jwtService.GenerateTokenUser(uuid.NewString(), entities.RoleUser)
	resp := f.request(t, "/protected", token)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestOnlyRolesEnforcesRole(t *testing.T) {
	f := newFixture(t)

	participant := f.createUser(t, entities.RoleUser, true)
	admin := f.createUser(t, entities.RoleAdmin, true)

	resp := f.request(t, "/admin-only", f.jwtService.GenerateTokenUser(participant.ID.String(), participant.Role))
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = f.request(t, "/admin-only", f.jwtService.GenerateTokenUser(admin.ID.String(), admin.Role))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}
