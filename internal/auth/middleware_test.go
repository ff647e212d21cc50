package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/identity-service/internal/domain"
	"github.com/spec-kit/identity-service/internal/observability"
)

func newTestApp(t *testing.T, directory UserDirectory) (*fiber.App, *TokenCodec) {
	t.Helper()

	codec := NewTokenCodec(testSecret)
	stage := NewMiddleware(codec, NewIdentityResolver(directory), nil, observability.NewMetrics(), zap.NewNop())

	app := fiber.New()
	app.Use(stage.Authenticate)
	app.Get("/whoami", func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return c.SendStatus(http.StatusNoContent)
		}
		return c.JSON(fiber.Map{"email": identity.Email, "role": identity.Role})
	})
	app.Get("/admin", RequireIdentity(), RequireAdmin(), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	return app, codec
}

func authedRequest(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestAuthenticateAttachesIdentity(t *testing.T) {
	alice := &domain.User{ID: 1, Email: "alice@example.com", Role: domain.RoleAdmin, Active: true}
	app, codec := newTestApp(t, &stubDirectory{users: map[string]*domain.User{alice.Email: alice}})

	token, _, err := codec.Issue(alice.Email, alice.ID, alice.Role, time.Hour)
	require.NoError(t, err)

	resp, err := app.Test(authedRequest(token))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthenticateDeactivatedUserDegradesToAnonymous(t *testing.T) {
	alice := &domain.User{ID: 1, Email: "alice@example.com", Role: domain.RoleAdmin, Active: true}
	directory := &stubDirectory{users: map[string]*domain.User{alice.Email: alice}}
	app, codec := newTestApp(t, directory)

	token, _, err := codec.Issue(alice.Email, alice.ID, alice.Role, time.Hour)
	require.NoError(t, err)

	// The still-unexpired token loses effect the moment the account
	// is deactivated in the directory.
	alice.Active = false

	resp, err := app.Test(authedRequest(token))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestAuthenticateInvalidTokenDegradesToAnonymous(t *testing.T) {
	app, _ := newTestApp(t, &stubDirectory{users: map[string]*domain.User{}})

	resp, err := app.Test(authedRequest("not-a-real-token"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestAuthenticateMissingTokenDegradesToAnonymous(t *testing.T) {
	app, _ := newTestApp(t, &stubDirectory{users: map[string]*domain.User{}})

	resp, err := app.Test(authedRequest(""))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestAuthenticateContainsDirectoryPanic(t *testing.T) {
	app, codec := newTestApp(t, &stubDirectory{panics: true})

	token, _, err := codec.Issue("alice@example.com", 1, domain.RoleUser, time.Hour)
	require.NoError(t, err)

	resp, err := app.Test(authedRequest(token))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestGuardsRejectAnonymousAndNonAdmin(t *testing.T) {
	bob := &domain.User{ID: 2, Email: "bob@example.com", Role: domain.RoleUser, Active: true}
	app, codec := newTestApp(t, &stubDirectory{users: map[string]*domain.User{bob.Email: bob}})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token, _, err := codec.Issue(bob.Email, bob.ID, bob.Role, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
