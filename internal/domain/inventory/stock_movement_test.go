package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovementType(t *testing.T) {
	t.Run("IsValid accepts all declared types", func(t *testing.T) {
		for _, mt := range AllMovementTypes() {
			assert.True(t, mt.IsValid(), mt.String())
		}
		assert.False(t, MovementType("CORRECTION").IsValid())
	})

	t.Run("direction of each type", func(t *testing.T) {
		increases := []MovementType{MovementTypeIn, MovementTypeProduction, MovementTypeCorrectionUp}
		decreases := []MovementType{MovementTypeOut, MovementTypeTransfer, MovementTypeCorrectionDown, MovementTypeWriteoff}

		for _, mt := range increases {
			assert.True(t, mt.IsIncrease(), mt.String())
			assert.False(t, mt.IsDecrease(), mt.String())
		}
		for _, mt := range decreases {
			assert.True(t, mt.IsDecrease(), mt.String())
			assert.False(t, mt.IsIncrease(), mt.String())
		}
	})

	t.Run("reverse type cancels the original effect", func(t *testing.T) {
		for _, mt := range AllMovementTypes() {
			rev := mt.ReverseType()
			assert.Equal(t, mt.IsIncrease(), rev.IsDecrease(), mt.String())
		}
	})
}

func TestNewStockMovement(t *testing.T) {
	productID := uuid.New()

	t.Run("creates a movement with builders", func(t *testing.T) {
		batchID := uuid.New()
		m, err := NewStockMovement(productID, MovementTypeProduction, 24, 3)
		require.NoError(t, err)

		m.WithBatch(batchID).WithReason("morning run").WithUser("mario").WithBalances(10, 34)

		assert.Equal(t, MovementTypeProduction, m.Type)
		assert.Equal(t, int64(24), m.Pieces)
		assert.Equal(t, int64(3), m.Boxes)
		require.NotNil(t, m.BatchID)
		assert.Equal(t, batchID, *m.BatchID)
		assert.Equal(t, "morning run", m.Reason)
		assert.Equal(t, "mario", m.UserName)
		assert.Equal(t, int64(10), m.BalanceBefore)
		assert.Equal(t, int64(34), m.BalanceAfter)
	})

	t.Run("rejects invalid type and non-positive pieces", func(t *testing.T) {
		_, err := NewStockMovement(productID, MovementType("BOGUS"), 5, 0)
		assert.Error(t, err)

		_, err = NewStockMovement(productID, MovementTypeIn, 0, 0)
		assert.Error(t, err)

		_, err = NewStockMovement(productID, MovementTypeIn, -5, 0)
		assert.Error(t, err)
	})

	t.Run("delta is signed by type", func(t *testing.T) {
		in, err := NewStockMovement(productID, MovementTypeIn, 8, 1)
		require.NoError(t, err)
		out, err := NewStockMovement(productID, MovementTypeWriteoff, 8, 1)
		require.NoError(t, err)

		assert.Equal(t, int64(8), in.Delta())
		assert.Equal(t, int64(-8), out.Delta())
	})

	t.Run("amend touches only reason and user", func(t *testing.T) {
		m, err := NewStockMovement(productID, MovementTypeOut, 4, 0)
		require.NoError(t, err)
		m.WithReason("order 17").WithUser("luigi")

		m.Amend("order 17 corrected", "peach")

		assert.Equal(t, "order 17 corrected", m.Reason)
		assert.Equal(t, "peach", m.UserName)
		assert.Equal(t, int64(4), m.Pieces)
		assert.Equal(t, MovementTypeOut, m.Type)

		m.Amend("", "")
		assert.Equal(t, "order 17 corrected", m.Reason)
		assert.Equal(t, "peach", m.UserName)
	})
}
