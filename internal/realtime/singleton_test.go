package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func resetSingleton() {
	hubMu.Lock()
	hub = nil
	hubMu.Unlock()
}

func TestHandle_BeforeInit(t *testing.T) {
	resetSingleton()

	h, err := Handle()
	assert.Nil(t, h)
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestInit_Idempotent(t *testing.T) {
	resetSingleton()

	first := Init()
	second := Init()
	assert.Same(t, first, second)

	h, err := Handle()
	assert.NoError(t, err)
	assert.Same(t, first, h)
}
