package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	assert.Equal(t, "hello", Sanitize("hello"))
	assert.Equal(t, "&lt;script&gt;alert(1)&lt;/script&gt;", Sanitize("<script>alert(1)</script>"))
	assert.Equal(t, "a &lt; b &gt; c", Sanitize("a < b > c"))
}
