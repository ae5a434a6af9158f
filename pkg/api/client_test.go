package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nourshop/storefront/pkg/api"
)

type staticTokens struct {
	token string
}

func (s staticTokens) Token() (string, bool) {
	return s.token, s.token != ""
}

func TestClient_Login(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("returns the issued credential", func(t *testing.T) {
		t.Parallel()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/auth/login", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "u1@example.com", body["email"])

			_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "issued-token"})
		}))
		t.Cleanup(server.Close)

		client, err := api.New(server.URL)
		require.NoError(t, err)

		token, err := client.Login(ctx, "u1@example.com", "secret")
		require.NoError(t, err)
		assert.Equal(t, "issued-token", token)
	})

	t.Run("decodes the backend error message", func(t *testing.T) {
		t.Parallel()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "wrong password"})
		}))
		t.Cleanup(server.Close)

		client, err := api.New(server.URL)
		require.NoError(t, err)

		_, err = client.Login(ctx, "u1@example.com", "nope")
		require.Error(t, err)

		var apiErr *api.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
		assert.Equal(t, "wrong password", apiErr.Message)
		assert.True(t, api.IsUnauthorized(err))
	})
}

func TestClient_BearerCredential(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("attached when the source has one", func(t *testing.T) {
		t.Parallel()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
			_ = json.NewEncoder(w).Encode([]api.Order{})
		}))
		t.Cleanup(server.Close)

		client, err := api.New(server.URL, api.WithTokenSource(staticTokens{token: "tok-123"}))
		require.NoError(t, err)

		_, err = client.MyOrders(ctx)
		assert.NoError(t, err)
	})

	t.Run("omitted when anonymous", func(t *testing.T) {
		t.Parallel()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.Header.Get("Authorization"))
			_ = json.NewEncoder(w).Encode([]api.Product{})
		}))
		t.Cleanup(server.Close)

		client, err := api.New(server.URL, api.WithTokenSource(staticTokens{}))
		require.NoError(t, err)

		_, err = client.ProductsByCategory(ctx, "kitchen")
		assert.NoError(t, err)
	})
}

func TestClient_ProductsByCategory(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/category/home%20and%20garden", r.URL.EscapedPath())
		_ = json.NewEncoder(w).Encode([]api.Product{
			{ID: "p1", Name: "Lamp", Price: 40, CategoryName: "home and garden"},
		})
	}))
	t.Cleanup(server.Close)

	client, err := api.New(server.URL)
	require.NoError(t, err)

	products, err := client.ProductsByCategory(context.Background(), "home and garden")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Lamp", products[0].Name)
}

func TestClient_CreateOrder(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)

		var req api.CreateOrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, api.PaymentCashOnDelivery, req.PaymentMethod)
		require.Len(t, req.Cart, 1)
		assert.Equal(t, "p1", req.Cart[0].ProductID)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(api.Order{
			ID:          "o1",
			Status:      api.OrderPending,
			TotalAmount: 80,
		})
	}))
	t.Cleanup(server.Close)

	client, err := api.New(server.URL)
	require.NoError(t, err)

	order, err := client.CreateOrder(context.Background(), api.CreateOrderRequest{
		CustomerDetails: api.CustomerDetails{Email: "u1@example.com", Phone: "050-0000000"},
		PaymentMethod:   api.PaymentCashOnDelivery,
		Cart: []api.CartLinePayload{
			{ProductID: "p1", Name: "Lamp", Price: 40, Quantity: 2},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "o1", order.ID)
	assert.Equal(t, api.OrderPending, order.Status)
}

func TestClient_AdminEndpoints(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var gotPath, gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		switch {
		case r.URL.Path == "/users" && r.Method == http.MethodGet:
			_ = json.NewEncoder(w).Encode([]api.User{{ID: "u1", Email: "u1@example.com", Role: "user"}})
		default:
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	t.Cleanup(server.Close)

	client, err := api.New(server.URL)
	require.NoError(t, err)

	users, err := client.Users(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)

	require.NoError(t, client.UpdateUserRole(ctx, "u1", "subadmin"))
	assert.Equal(t, "/users/u1/role", gotPath)
	assert.Equal(t, http.MethodPatch, gotMethod)

	require.NoError(t, client.UpdateOrderStatus(ctx, "o1", api.OrderShipped))
	assert.Equal(t, "/orders/o1/status", gotPath)

	require.NoError(t, client.DeleteUser(ctx, "u1"))
	assert.Equal(t, http.MethodDelete, gotMethod)
}

func TestNew_InvalidBaseURL(t *testing.T) {
	t.Parallel()

	_, err := api.New("not a url")
	assert.ErrorIs(t, err, api.ErrInvalidBaseURL)
}
