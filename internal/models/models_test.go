package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input   string
		want    Amount
		wantErr bool
	}{
		{"1500", 150000, false},
		{"1500.50", 150050, false},
		{"1500.5", 150050, false},
		{"0.99", 99, false},
		{" 250 ", 25000, false},
		{"", 0, true},
		{"abc", 0, true},
		{"12.345", 0, true},
		{"-10", 0, true},
		{"-0.50", 0, true},
		{"1e3", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseAmount(tt.input)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.input)
			continue
		}
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestAmountString(t *testing.T) {
	assert.Equal(t, "AED 1,500", Amount(150000).String())
	assert.Equal(t, "AED 1,500.50", Amount(150050).String())
	assert.Equal(t, "AED 0", Amount(0).String())
	assert.Equal(t, "AED 1,234,567.01", Amount(123456701).String())
}

func TestAmountJSON(t *testing.T) {
	// Сериализация отдает дирхамы в том же виде, в каком их принимает
	// ParseAmount: прочитанная цена, отправленная назад, не меняется.
	raw, err := json.Marshal(Amount(100000))
	require.NoError(t, err)
	assert.Equal(t, "1000", string(raw))

	raw, err = json.Marshal(Amount(150050))
	require.NoError(t, err)
	assert.Equal(t, "1500.50", string(raw))

	var a Amount
	require.NoError(t, json.Unmarshal([]byte("1000"), &a))
	assert.Equal(t, Amount(100000), a)

	require.NoError(t, json.Unmarshal([]byte(`"1500.50"`), &a))
	assert.Equal(t, Amount(150050), a)

	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &a))
}

func TestAmountJSONRoundTrip(t *testing.T) {
	for _, fils := range []Amount{0, 99, 100000, 150050, 123456701} {
		raw, err := json.Marshal(fils)
		require.NoError(t, err)
		var back Amount
		require.NoError(t, json.Unmarshal(raw, &back))
		assert.Equal(t, fils, back, "serialized as %s", raw)
	}
}

func TestAmountMul(t *testing.T) {
	hourly := Amount(150000)
	assert.Equal(t, Amount(450000), hourly.Mul(3))
}

func TestValidators(t *testing.T) {
	assert.True(t, ValidRole(RoleOperator))
	assert.False(t, ValidRole("admin"))

	assert.True(t, ValidYachtStatus(YachtStatusDisabled))
	assert.False(t, ValidYachtStatus("archived"))

	assert.True(t, ValidBookingStatus(BookingStatusConfirmed))
	assert.False(t, ValidBookingStatus("cancelled"))

	assert.True(t, ValidLocation(LocationJBR))
	assert.False(t, ValidLocation("Palm Jumeirah"))
}

func TestUserSanitized(t *testing.T) {
	u := User{ID: "u1", Email: "g@x.com", PasswordDigest: "$2a$10$secret"}
	s := u.Sanitized()
	assert.Empty(t, s.PasswordDigest)
	assert.Equal(t, "u1", s.ID)
	// original untouched
	assert.NotEmpty(t, u.PasswordDigest)
}
