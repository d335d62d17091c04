package commands_test

import (
	"testing"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBurnLoyaltyCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	cmd, err := commands.NewBurnLoyaltyCommand(id, 50, "redeemed at checkout")
	require.NoError(t, err)
	assert.True(t, cmd.OrderID().IsEqual(id))
	assert.Equal(t, int64(50), cmd.Points())
	assert.Equal(t, "redeemed at checkout", cmd.Reason())
}

func TestNewBurnLoyaltyCommand_InvalidPoints(t *testing.T) {
	_, err := commands.NewBurnLoyaltyCommand(kernel.NewUUID(), -5, "redeemed")
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrPointsAreInvalid)
}

func TestNewBurnLoyaltyCommand_EmptyReason(t *testing.T) {
	_, err := commands.NewBurnLoyaltyCommand(kernel.NewUUID(), 50, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrReasonIsRequired)
}
