package commands_test

import (
	"testing"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMarkOrderPendingCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	cmd, err := commands.NewMarkOrderPendingCommand(id)
	require.NoError(t, err)
	assert.True(t, cmd.OrderID().IsEqual(id))
}

func TestNewMarkOrderPendingCommand_InvalidOrderID(t *testing.T) {
	_, err := commands.NewMarkOrderPendingCommand(kernel.UUID{})
	require.Error(t, err)
}

func TestMarkOrderPendingCommand_NotConstructed(t *testing.T) {
	cmd := commands.MarkOrderPendingCommand{}
	require.ErrorIs(t, cmd.Validate(), commands.ErrMarkOrderPendingCommandIsNotConstructed)
}
