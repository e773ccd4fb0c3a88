package formatter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpinner_DrawsThenClears(t *testing.T) {
	var buf bytes.Buffer
	stop := StartSpinner(&buf, "Loading clients")
	stop()
	stop()

	out := buf.String()
	assert.Contains(t, out, "Loading clients")
	assert.True(t, strings.HasSuffix(out, "\r\033[K"), "last write clears the line")
}
