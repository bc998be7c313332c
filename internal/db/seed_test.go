package db

import (
	"fmt"
	"strings"
	"testing"

	"paydash/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	gdb, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, Migrate(gdb))
	return gdb
}

func tableCounts(t *testing.T, gdb *gorm.DB) map[string]int64 {
	t.Helper()
	counts := map[string]int64{}
	models := map[string]any{
		"users":           &domain.User{},
		"customers":       &domain.Customer{},
		"products":        &domain.Product{},
		"payment_methods": &domain.PaymentMethod{},
		"transactions":    &domain.Transaction{},
	}
	for name, model := range models {
		var n int64
		require.NoError(t, gdb.Model(model).Count(&n).Error)
		counts[name] = n
	}
	return counts
}

func TestSeedPopulatesDemoData(t *testing.T) {
	gdb := openTestDB(t)
	require.NoError(t, Seed(gdb))

	counts := tableCounts(t, gdb)
	assert.Equal(t, int64(2), counts["users"])
	assert.Equal(t, int64(6), counts["customers"])
	assert.Equal(t, int64(5), counts["products"])
	assert.Equal(t, int64(4), counts["payment_methods"])
	assert.Equal(t, int64(16), counts["transactions"])

	// The documented demo credentials must exist as stored plaintext
	var user domain.User
	require.NoError(t, gdb.First(&user, "username = ?", "pypl").Error)
	assert.Equal(t, "pypl", user.Password)
	assert.Equal(t, "admin", user.Role)
	assert.True(t, user.Balance.Equal(decimal.RequireFromString("8250.50")))
}

func TestSeedIsIdempotent(t *testing.T) {
	gdb := openTestDB(t)
	require.NoError(t, Seed(gdb))
	before := tableCounts(t, gdb)

	require.NoError(t, Seed(gdb))
	assert.Equal(t, before, tableCounts(t, gdb), "re-seeding must not add rows")
}

func TestSeedKeepsExistingRows(t *testing.T) {
	gdb := openTestDB(t)
	require.NoError(t, Seed(gdb))

	// An admin edit must survive a restart's re-seed
	require.NoError(t, gdb.Model(&domain.User{Username: "pypl"}).
		Update("balance", decimal.RequireFromString("1.00")).Error)
	require.NoError(t, Seed(gdb))

	var user domain.User
	require.NoError(t, gdb.First(&user, "username = ?", "pypl").Error)
	assert.True(t, user.Balance.Equal(decimal.RequireFromString("1.00")),
		"re-seeding must not overwrite edited rows")
}

func TestSeedTotalsDeriveFromAmountAndFees(t *testing.T) {
	gdb := openTestDB(t)
	require.NoError(t, Seed(gdb))

	var txs []domain.Transaction
	require.NoError(t, gdb.Find(&txs).Error)
	require.NotEmpty(t, txs)
	for _, tx := range txs {
		assert.True(t, tx.Total.Equal(tx.Amount.Sub(tx.Fees)),
			"transaction %d: total %s != amount %s - fees %s", tx.ID, tx.Total, tx.Amount, tx.Fees)
		assert.True(t, domain.ValidStatus(tx.Status), "transaction %d has status %q", tx.ID, tx.Status)
	}
}
