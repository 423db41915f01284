package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/application/usecases/commands"
)

func TestNewIngestOrderCommand_ValidInput(t *testing.T) {
	cmd, err := commands.NewIngestOrderCommand("ORD-1", "Jane Doe", "jane@example.com", "",
		[]commands.IngestOrderLine{{EntryNumber: 1, Quantity: 5}})
	require.NoError(t, err)
	assert.Equal(t, "ORD-1", cmd.OrderCode())
	assert.Equal(t, "Jane Doe", cmd.CustomerName())
	assert.Len(t, cmd.Lines(), 1)
}

func TestNewIngestOrderCommand_EmptyOrderCode(t *testing.T) {
	_, err := commands.NewIngestOrderCommand("", "Jane Doe", "", "",
		[]commands.IngestOrderLine{{EntryNumber: 1, Quantity: 5}})
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrOrderCodeIsRequired)
}

func TestNewIngestOrderCommand_EmptyCustomerName(t *testing.T) {
	_, err := commands.NewIngestOrderCommand("ORD-1", "", "", "",
		[]commands.IngestOrderLine{{EntryNumber: 1, Quantity: 5}})
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrCustomerNameIsRequired)
}

func TestNewIngestOrderCommand_NoLines(t *testing.T) {
	_, err := commands.NewIngestOrderCommand("ORD-1", "Jane Doe", "", "", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrOrderLinesAreRequired)
}

func TestNewIngestOrderCommand_InvalidLine(t *testing.T) {
	_, err := commands.NewIngestOrderCommand("ORD-1", "Jane Doe", "", "",
		[]commands.IngestOrderLine{{EntryNumber: 1, Quantity: 0}})
	require.Error(t, err)
}
