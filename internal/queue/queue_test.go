package queue_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ionfleet/fleetctl/internal/queue"
)

func TestReadyQueue_PriorityOrdering(t *testing.T) {
	// Arrange
	q := queue.New()
	q.Push("SHIP-C", "2024-01-01T00:00:03.000Z")
	q.Push("SHIP-A", "2024-01-01T00:00:01.000Z")
	q.Push("SHIP-B", "2024-01-01T00:00:02.000Z")

	// Act
	first, ok1 := q.ExtractMin()
	second, ok2 := q.ExtractMin()
	third, ok3 := q.ExtractMin()

	// Assert
	require.True(t, ok1)
	require.True(t, ok2)
	require.True(t, ok3)
	assert.Equal(t, "SHIP-A", first)
	assert.Equal(t, "SHIP-B", second)
	assert.Equal(t, "SHIP-C", third)
}

func TestReadyQueue_FIFOTieBreak(t *testing.T) {
	// Arrange
	q := queue.New()
	const same = "2024-01-01T00:00:00.000Z"
	q.Push("SHIP-FIRST", same)
	q.Push("SHIP-SECOND", same)
	q.Push("SHIP-THIRD", same)

	// Act
	first, _ := q.ExtractMin()
	second, _ := q.ExtractMin()
	third, _ := q.ExtractMin()

	// Assert
	assert.Equal(t, "SHIP-FIRST", first)
	assert.Equal(t, "SHIP-SECOND", second)
	assert.Equal(t, "SHIP-THIRD", third)
}

func TestReadyQueue_ExtractMinNeverReturnsLaterPriorityWhileEarlierRemains(t *testing.T) {
	// Arrange
	q := queue.New()
	priorities := []string{
		"2024-01-01T00:00:05.000Z",
		"2024-01-01T00:00:01.000Z",
		"2024-01-01T00:00:09.000Z",
		"2024-01-01T00:00:02.000Z",
	}
	for i, p := range priorities {
		q.Push(shipSymbol(i), p)
	}

	// Act / Assert: each extraction must be <= every remaining priority.
	var lastExtracted string
	for q.Size() > 0 {
		next, ok := q.PeekNextPriority()
		require.True(t, ok)
		symbol, ok := q.ExtractMin()
		require.True(t, ok)
		_ = symbol
		if lastExtracted != "" {
			assert.LessOrEqual(t, lastExtracted, next)
		}
		lastExtracted = next
	}
}

func TestReadyQueue_PushExistingSymbolReplacesPriorityNotDuplicates(t *testing.T) {
	// Arrange
	q := queue.New()
	q.Push("SHIP-1", "2024-01-01T00:00:05.000Z")

	// Act
	q.Push("SHIP-1", "2024-01-01T00:00:01.000Z")

	// Assert
	assert.Equal(t, 1, q.Size())
	symbol, ok := q.ExtractMin()
	require.True(t, ok)
	assert.Equal(t, "SHIP-1", symbol)
	assert.Equal(t, 0, q.Size())
}

func TestReadyQueue_ExtractMinOnEmptyReturnsFalse(t *testing.T) {
	q := queue.New()
	_, ok := q.ExtractMin()
	assert.False(t, ok)
}

func shipSymbol(i int) string {
	return []string{"SHIP-A", "SHIP-B", "SHIP-C", "SHIP-D"}[i]
}
