// internal/domain/domain_test.go
package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "125.50", FormatCents(12550))
	assert.Equal(t, "0.01", FormatCents(1))
	assert.Equal(t, "0.00", FormatCents(0))
	assert.Equal(t, "-8.00", FormatCents(-800))
	assert.Equal(t, "10000000000.00", FormatCents(1_000_000_000_000))
}

func TestLedgerMetaRoundTrip(t *testing.T) {
	meta := LedgerMeta{Note: "first payment", RequestID: "req-1"}

	v, err := meta.Value()
	require.NoError(t, err)
	raw, ok := v.([]byte)
	require.True(t, ok)

	var got LedgerMeta
	require.NoError(t, got.Scan(raw))
	assert.Equal(t, meta, got)
}

func TestLedgerMetaEmpty(t *testing.T) {
	v, err := LedgerMeta{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	var got LedgerMeta
	require.NoError(t, got.Scan(nil))
	assert.True(t, got.IsZero())
}

func TestCustomerAllowsDebt(t *testing.T) {
	unlimited := Customer{CreditLimitCents: 0}
	assert.True(t, unlimited.AllowsDebt(1))
	assert.True(t, unlimited.AllowsDebt(1_000_000))

	limited := Customer{CreditLimitCents: 500}
	assert.True(t, limited.AllowsDebt(500))
	assert.False(t, limited.AllowsDebt(501))
}

func TestRoleIsAdmin(t *testing.T) {
	assert.True(t, RoleAdmin.IsAdmin())
	assert.True(t, RoleSuperadmin.IsAdmin())
	assert.False(t, RoleCustomer.IsAdmin())
}
