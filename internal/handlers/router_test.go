package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ubermelon/shop/internal/catalog"
	"github.com/ubermelon/shop/internal/customers"
	"github.com/ubermelon/shop/internal/domain"
	"github.com/ubermelon/shop/internal/identity"
	"github.com/ubermelon/shop/internal/session"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	catalogStore, err := catalog.NewStore([]domain.Item{
		{ID: 1, CommonName: "Muskmelon", Variety: "Musk", Price: 500, Description: "A **classic** melon."},
		{ID: 2, CommonName: "Casaba", Price: 350},
	})
	require.NoError(t, err)

	customerStore := customers.NewStore([]domain.Customer{
		{Email: "jane@ubermelon.com", FirstName: "Jane", LastName: "Hacks", Password: "securepassword"},
	})

	identitySvc, err := identity.NewService(identity.ServiceDeps{Credentials: customerStore})
	require.NoError(t, err)

	sessions, err := session.NewManager(session.Config{
		CookieName: "test_session",
		HashKey:    []byte("12345678901234567890123456789012"),
	})
	require.NoError(t, err)

	renderer, err := NewRenderer("../../templates")
	require.NoError(t, err)

	h, err := New(Deps{
		Catalog:  catalogStore,
		Identity: identitySvc,
		Sessions: sessions,
		Renderer: renderer,
	})
	require.NoError(t, err)

	srv := httptest.NewServer(h.Router())
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func get(t *testing.T, client *http.Client, url string) (*http.Response, string) {
	t.Helper()
	resp, err := client.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func postForm(t *testing.T, client *http.Client, target string, form url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := client.PostForm(target, form)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestListMelonsPage(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	resp, body := get(t, client, srv.URL+"/melons")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Muskmelon")
	assert.Contains(t, body, "Casaba")
	assert.Contains(t, body, "$5.00")
}

func TestMelonDetailPage(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	resp, body := get(t, client, srv.URL+"/melons/1")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Muskmelon")
	// Markdown description rendered to sanitized HTML.
	assert.Contains(t, body, "<strong>classic</strong>")

	resp, _ = get(t, client, srv.URL+"/melons/999")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = get(t, client, srv.URL+"/melons/not-a-number")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAddToCartAndAggregate(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	// Two muskmelons and one casaba; the client follows the redirect to /cart.
	_, body := postForm(t, client, srv.URL+"/cart/items/1", nil)
	assert.Contains(t, body, "Muskmelon successfully added to cart.")
	postForm(t, client, srv.URL+"/cart/items/1", nil)
	postForm(t, client, srv.URL+"/cart/items/2", nil)

	resp, body := get(t, client, srv.URL+"/cart")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Muskmelon")
	assert.Contains(t, body, "$10.00") // 2 × $5.00
	assert.Contains(t, body, "$3.50")
	assert.Contains(t, body, "$13.50")
}

func TestAddUnknownMelonIs404(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	resp, err := client.Post(srv.URL+"/cart/items/999", "application/x-www-form-urlencoded", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestEmptyCartPage(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	resp, body := get(t, client, srv.URL+"/cart")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Your cart is empty")
}

func TestLoginFlows(t *testing.T) {
	srv := newTestServer(t)

	t.Run("unknown email", func(t *testing.T) {
		client := newClient(t)
		resp, body := postForm(t, client, srv.URL+"/login", url.Values{
			"email":    {"ghost@ubermelon.com"},
			"password": {"whatever"},
		})
		// Redirect lands back on the login page with the rejection flash.
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.True(t, strings.HasSuffix(resp.Request.URL.Path, "/login"))
		assert.Contains(t, body, "No such email.")
	})

	t.Run("wrong password", func(t *testing.T) {
		client := newClient(t)
		resp, body := postForm(t, client, srv.URL+"/login", url.Values{
			"email":    {"jane@ubermelon.com"},
			"password": {"wrong"},
		})
		assert.True(t, strings.HasSuffix(resp.Request.URL.Path, "/login"))
		assert.Contains(t, body, "Incorrect password.")
		assert.NotContains(t, body, "jane@ubermelon.com")
	})

	t.Run("success then logout", func(t *testing.T) {
		client := newClient(t)
		resp, body := postForm(t, client, srv.URL+"/login", url.Values{
			"email":    {"jane@ubermelon.com"},
			"password": {"securepassword"},
		})
		assert.True(t, strings.HasSuffix(resp.Request.URL.Path, "/melons"))
		assert.Contains(t, body, "Login successful.")
		assert.Contains(t, body, "jane@ubermelon.com")

		resp, body = postForm(t, client, srv.URL+"/logout", nil)
		assert.True(t, strings.HasSuffix(resp.Request.URL.Path, "/melons"))
		assert.Contains(t, body, "Logout successful.")
		assert.NotContains(t, body, "jane@ubermelon.com")
	})

	t.Run("anonymous logout is a no-op", func(t *testing.T) {
		client := newClient(t)
		resp, body := postForm(t, client, srv.URL+"/logout", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, "Logout successful.")
	})
}

func TestLoginKeepsCart(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	postForm(t, client, srv.URL+"/cart/items/2", nil)
	postForm(t, client, srv.URL+"/login", url.Values{
		"email":    {"jane@ubermelon.com"},
		"password": {"securepassword"},
	})

	_, body := get(t, client, srv.URL+"/cart")
	assert.Contains(t, body, "Casaba")
	assert.Contains(t, body, "$3.50")
}

func TestCheckoutStubLeavesCartUntouched(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	postForm(t, client, srv.URL+"/cart/items/1", nil)

	resp, body := postForm(t, client, srv.URL+"/checkout", nil)
	assert.True(t, strings.HasSuffix(resp.Request.URL.Path, "/melons"))
	assert.Contains(t, body, "Checkout will be implemented in a future version")

	_, body = get(t, client, srv.URL+"/cart")
	assert.Contains(t, body, "Muskmelon")
}

func TestAPIMelons(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	resp, body := get(t, client, srv.URL+"/api/v1/melons")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var listing struct {
		Melons []domain.Item `json:"melons"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &listing))
	require.Len(t, listing.Melons, 2)
	assert.Equal(t, "Muskmelon", listing.Melons[0].CommonName)
	assert.Equal(t, int64(500), listing.Melons[0].Price)
}

func TestAPIMelonNotFoundEnvelope(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	resp, body := get(t, client, srv.URL+"/api/v1/melons/999")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var envelope map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &envelope))
	assert.Equal(t, "melon_not_found", envelope["error"])
}

func TestAPICartAggregates(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	postForm(t, client, srv.URL+"/cart/items/1", nil)
	postForm(t, client, srv.URL+"/cart/items/1", nil)
	postForm(t, client, srv.URL+"/cart/items/2", nil)

	_, body := get(t, client, srv.URL+"/api/v1/cart")

	var order domain.Order
	require.NoError(t, json.Unmarshal([]byte(body), &order))
	require.Len(t, order.Lines, 2)
	assert.Equal(t, 2, order.Lines[0].Quantity)
	assert.Equal(t, int64(1000), order.Lines[0].Subtotal)
	assert.Equal(t, int64(1350), order.Total)
}

func TestAPIUnknownRouteEnvelope(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	resp, body := get(t, client, srv.URL+"/api/v1/nope")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var envelope map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &envelope))
	assert.Equal(t, "route_not_found", envelope["error"])
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	resp, body := get(t, client, srv.URL+"/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body)
}
