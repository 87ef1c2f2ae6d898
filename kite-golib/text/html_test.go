package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripHTML(t *testing.T) {
	doc := `<p>Given an array <code>nums</code> of integers &amp; a target.</p><ul><li>Return indices.</li></ul>`
	assert.Equal(t, "Given an array nums of integers & a target. Return indices.", StripHTML(doc))

	assert.Equal(t, "plain text", StripHTML("plain text"))
	assert.Equal(t, "a < b", StripHTML("a < b"))
}
