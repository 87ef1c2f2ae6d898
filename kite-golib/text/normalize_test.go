package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanASCII(t *testing.T) {
	assert.Equal(t, "n   10 5  a i ", CleanASCII("N ≤ 10^5, a_i!"))
	assert.Equal(t, "caf  d j  vu", CleanASCII("Café déjà-vu"))
	assert.Equal(t, "line\none", CleanASCII("Line\nOne"))
}
