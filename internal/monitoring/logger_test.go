package monitoring

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetLogger(t *testing.T) {
	orig := Logf
	t.Cleanup(func() { Logf = orig })

	var got []string
	SetLogger(func(format string, v ...any) {
		got = append(got, fmt.Sprintf(format, v...))
	})
	Logf("run %s finished after %d ticks", "abc", 3)
	assert.Equal(t, []string{"run abc finished after 3 ticks"}, got)

	SetLogger(nil)
	Logf("dropped")
	assert.Len(t, got, 1)
}
