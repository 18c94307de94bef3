package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequenceIDs_GeneratesInOrder(t *testing.T) {
	ids := NewSequenceIDs()

	assert.Equal(t, "rec-000001", ids.Next())
	assert.Equal(t, "rec-000002", ids.Next())
	assert.Equal(t, "rec-000003", ids.Next())
}

func TestSequenceIDs_Reset(t *testing.T) {
	ids := NewSequenceIDs()
	ids.Next()
	ids.Next()

	ids.Reset()
	assert.Equal(t, "rec-000001", ids.Next())
}
