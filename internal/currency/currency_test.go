package currency

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/clarity-clinic/clarity/internal/shared"
)

func testSettings(t *testing.T) *Settings {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSettings(client)
}

func TestCurrentDefaultsToINR(t *testing.T) {
	settings := testSettings(t)
	c := settings.Current(context.Background())
	require.Equal(t, "INR", c.Code)
	require.Equal(t, "₹", c.Symbol)
}

func TestSetAndCurrent(t *testing.T) {
	settings := testSettings(t)
	ctx := context.Background()

	active, err := settings.Set(ctx, "USD")
	require.NoError(t, err)
	require.Equal(t, "USD", active.Code)
	require.Equal(t, "USD", settings.Current(ctx).Code)
}

func TestSetRejectsUnknownCode(t *testing.T) {
	settings := testSettings(t)
	_, err := settings.Set(context.Background(), "BTC")
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestFormatterTwoFractionDigits(t *testing.T) {
	usd, ok := Lookup("USD")
	require.True(t, ok)
	f := NewFormatter(usd)
	require.Equal(t, "$550.00", f.Format(550))
	require.Equal(t, "$1,234.50", f.Format(1234.5))
}

func TestFormatterIndianGrouping(t *testing.T) {
	inr, ok := Lookup("INR")
	require.True(t, ok)
	f := NewFormatter(inr)
	require.Equal(t, "₹1,00,000.00", f.Format(100000))
}
