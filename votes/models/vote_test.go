package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeValue(t *testing.T) {
	assert.Equal(t, ValueDown, NormalizeValue(-1))
	assert.Equal(t, ValueUp, NormalizeValue(1))
	assert.Equal(t, ValueUp, NormalizeValue(0))
	assert.Equal(t, ValueUp, NormalizeValue(5))
	assert.Equal(t, ValueUp, NormalizeValue(-2))
}
