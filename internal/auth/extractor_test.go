package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extract(t *testing.T, build func(*http.Request)) (string, bool) {
	t.Helper()

	var got string
	var found bool
	app := fiber.New()
	app.Get("/probe", func(c *fiber.Ctx) error {
		got, found = TokenFromRequest(c)
		return c.SendStatus(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	build(req)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	return got, found
}

func TestTokenFromRequestPriority(t *testing.T) {
	setHeader := func(req *http.Request) { req.Header.Set("Authorization", "Bearer header-token") }
	setCookie := func(req *http.Request) { req.AddCookie(&http.Cookie{Name: "token", Value: "cookie-token"}) }
	withQuery := func(req *http.Request) {
		req.URL.RawQuery = "token=query-token"
		req.RequestURI = req.URL.RequestURI()
	}

	t.Run("header wins over query and cookie", func(t *testing.T) {
		got, found := extract(t, func(req *http.Request) {
			setHeader(req)
			withQuery(req)
			setCookie(req)
		})
		assert.True(t, found)
		assert.Equal(t, "header-token", got)
	})

	t.Run("query wins over cookie", func(t *testing.T) {
		got, found := extract(t, func(req *http.Request) {
			withQuery(req)
			setCookie(req)
		})
		assert.True(t, found)
		assert.Equal(t, "query-token", got)
	})

	t.Run("cookie alone", func(t *testing.T) {
		got, found := extract(t, setCookie)
		assert.True(t, found)
		assert.Equal(t, "cookie-token", got)
	})

	t.Run("absent", func(t *testing.T) {
		got, found := extract(t, func(*http.Request) {})
		assert.False(t, found)
		assert.Empty(t, got)
	})
}

func TestTokenFromRequestBearerPrefixIsCaseSensitive(t *testing.T) {
	got, found := extract(t, func(req *http.Request) {
		req.Header.Set("Authorization", "bearer lowercase-scheme")
	})
	assert.False(t, found)
	assert.Empty(t, got)
}
