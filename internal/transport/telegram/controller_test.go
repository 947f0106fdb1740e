package telegram

import (
	"fmt"
	"testing"

	"github.com/KotFed0t/portfolio_tracker/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriceArgs(t *testing.T) {
	symbol, price, err := parsePriceArgs([]string{"aapl", "172,5"})
	require.NoError(t, err)
	assert.Equal(t, "aapl", symbol)
	assert.True(t, price.Equal(decimal.RequireFromString("172.5")))

	_, _, err = parsePriceArgs([]string{"aapl"})
	assert.ErrorIs(t, err, errUsage)

	_, _, err = parsePriceArgs([]string{"aapl", "cheap"})
	assert.ErrorIs(t, err, errUsage)
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "Asset not found.", errorMessage(service.ErrAssetNotFound))
	assert.Equal(t, "Couldn't fetch the price right now.", errorMessage(fmt.Errorf("%w: timeout", service.ErrPriceNotResolved)))
	assert.Equal(t, internalErrMsg, errorMessage(fmt.Errorf("disk full")))
}
