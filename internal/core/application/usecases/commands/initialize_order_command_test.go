package commands_test

import (
	"testing"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInitializeOrderCommand_ValidInput(t *testing.T) {
	cmd, err := commands.NewInitializeOrderCommand("ref-123", "cash", 10000, "USD")
	require.NoError(t, err)
	assert.Equal(t, "ref-123", cmd.ReferenceID())
	assert.Equal(t, order.MethodCash, cmd.PaymentMethod())
	assert.Equal(t, int64(10000), cmd.Amount())
	assert.Equal(t, "USD", cmd.Currency())
}

func TestNewInitializeOrderCommand_EmptyReferenceID(t *testing.T) {
	_, err := commands.NewInitializeOrderCommand("", "cash", 10000, "USD")
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrReferenceIDIsRequired)
}

func TestNewInitializeOrderCommand_UnknownPaymentMethod(t *testing.T) {
	_, err := commands.NewInitializeOrderCommand("ref-123", "bitcoin", 10000, "USD")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewInitializeOrderCommand_InvalidAmount(t *testing.T) {
	_, err := commands.NewInitializeOrderCommand("ref-123", "cash", 0, "USD")
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrAmountIsInvalid)
}

func TestNewInitializeOrderCommand_EmptyCurrency(t *testing.T) {
	_, err := commands.NewInitializeOrderCommand("ref-123", "cash", 10000, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrCurrencyIsRequired)
}
