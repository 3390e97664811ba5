package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPositionString(t *testing.T) {
	assert.Equal(t, "line 3 col 7", Position{Offset: 20, Line: 3, Column: 7}.String())
}
