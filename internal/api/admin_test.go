package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"paydash/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteUnknownUserLeavesTableUnchanged(t *testing.T) {
	gdb := newTestDB(t)
	r := newTestRouter(gdb, "http://localhost:0", 0)
	cookies := loginAs(t, r, "pypl", "pypl")

	var before int64
	require.NoError(t, gdb.Model(&domain.User{}).Count(&before).Error)

	w := doJSON(r, http.MethodDelete, "/api/admin/users/ghost", nil, cookies)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var after int64
	require.NoError(t, gdb.Model(&domain.User{}).Count(&after).Error)
	assert.Equal(t, before, after, "a failed delete must not mutate the users table")
}

func TestDeleteUser(t *testing.T) {
	gdb := newTestDB(t)
	r := newTestRouter(gdb, "http://localhost:0", 0)
	cookies := loginAs(t, r, "pypl", "pypl")

	w := doJSON(r, http.MethodDelete, "/api/admin/users/merchant", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	err := gdb.First(&domain.User{}, "username = ?", "merchant").Error
	assert.Error(t, err, "deleted user must be gone")
}

func TestDeleteOwnAccountRejected(t *testing.T) {
	gdb := newTestDB(t)
	r := newTestRouter(gdb, "http://localhost:0", 0)
	cookies := loginAs(t, r, "pypl", "pypl")

	w := doJSON(r, http.MethodDelete, "/api/admin/users/pypl", nil, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	gdb := newTestDB(t)
	r := newTestRouter(gdb, "http://localhost:0", 0)
	cookies := loginAs(t, r, "merchant", "merchant") // Plain user role

	w := doJSON(r, http.MethodDelete, "/api/admin/users/pypl", nil, cookies)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateUser(t *testing.T) {
	gdb := newTestDB(t)
	r := newTestRouter(gdb, "http://localhost:0", 0)
	cookies := loginAs(t, r, "pypl", "pypl")

	w := doJSON(r, http.MethodPut, "/api/admin/users/merchant", map[string]any{
		"full_name": "Jamie R.",
		"balance":   250.75,
	}, cookies)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var u domain.User
	require.NoError(t, gdb.First(&u, "username = ?", "merchant").Error)
	assert.Equal(t, "Jamie R.", u.FullName)
	assert.True(t, u.Balance.Equal(decimal.RequireFromString("250.75")), "got %s", u.Balance)
	assert.Equal(t, "jamie@pypl.demo", u.Email, "omitted fields must keep their stored value")
}

func TestUpdateUnknownUser(t *testing.T) {
	gdb := newTestDB(t)
	r := newTestRouter(gdb, "http://localhost:0", 0)
	cookies := loginAs(t, r, "pypl", "pypl")

	w := doJSON(r, http.MethodPut, "/api/admin/users/ghost", map[string]any{"full_name": "X"}, cookies)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateUserRejectsUnknownRole(t *testing.T) {
	gdb := newTestDB(t)
	r := newTestRouter(gdb, "http://localhost:0", 0)
	cookies := loginAs(t, r, "pypl", "pypl")

	w := doJSON(r, http.MethodPut, "/api/admin/users/merchant", map[string]any{"role": "superuser"}, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateTransaction(t *testing.T) {
	gdb := newTestDB(t)
	r := newTestRouter(gdb, "http://localhost:0", 0)
	cookies := loginAs(t, r, "pypl", "pypl")

	w := doJSON(r, http.MethodPut, "/api/admin/transactions/1", map[string]any{
		"amount": 100.0,
		"fees":   10.0,
		"status": "pending",
	}, cookies)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var tx domain.Transaction
	require.NoError(t, gdb.First(&tx, 1).Error)
	assert.Equal(t, "pending", tx.Status)
	assert.True(t, tx.Total.Equal(decimal.RequireFromString("90")),
		"total must be recomputed from amount and fees, got %s", tx.Total)
}

func TestUpdateTransactionValidation(t *testing.T) {
	gdb := newTestDB(t)
	r := newTestRouter(gdb, "http://localhost:0", 0)
	cookies := loginAs(t, r, "pypl", "pypl")

	tests := []struct {
		name string
		path string
		body map[string]any
		want int
	}{
		{"unknown transaction", "/api/admin/transactions/9999", map[string]any{"status": "pending"}, http.StatusNotFound},
		{"invalid id", "/api/admin/transactions/abc", map[string]any{"status": "pending"}, http.StatusBadRequest},
		{"unknown status", "/api/admin/transactions/1", map[string]any{"status": "refunded"}, http.StatusBadRequest},
		{"unknown customer", "/api/admin/transactions/1", map[string]any{"customer_id": 999}, http.StatusBadRequest},
		{"unknown product", "/api/admin/transactions/1", map[string]any{"product_id": 999}, http.StatusBadRequest},
		{"unknown payment method", "/api/admin/transactions/1", map[string]any{"payment_method_id": 999}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, http.MethodPut, tt.path, tt.body, cookies)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestOptionEndpoints(t *testing.T) {
	gdb := newTestDB(t)
	r := newTestRouter(gdb, "http://localhost:0", 0)
	cookies := loginAs(t, r, "pypl", "pypl")

	w := doJSON(r, http.MethodGet, "/api/options/statuses", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	var statuses struct {
		Statuses []string `json:"statuses"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &statuses))
	assert.Equal(t, []string{"completed", "pending", "failed", "cancelled"}, statuses.Statuses)

	w = doJSON(r, http.MethodGet, "/api/options/customers", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	var customers struct {
		Customers []domain.Customer `json:"customers"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &customers))
	assert.Len(t, customers.Customers, 6)

	w = doJSON(r, http.MethodGet, "/api/options/payment-methods", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	var methods struct {
		PaymentMethods []domain.PaymentMethod `json:"payment_methods"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &methods))
	assert.Len(t, methods.PaymentMethods, 4)

	w = doJSON(r, http.MethodGet, "/api/options/products", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	var products struct {
		Products []domain.Product `json:"products"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	assert.Len(t, products.Products, 5, "products are scoped to the session user")
}
