package env

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapture(t *testing.T) {
	ctx, rec := Capture()
	assert.False(t, rec.Failed())

	ctx.Abort("map %s is broken", "level_01")

	assert.True(t, rec.Failed())
	assert.Equal(t, []string{"map level_01 is broken"}, rec.Messages)
}

func TestContext_Debugf(t *testing.T) {
	var buf bytes.Buffer
	ctx := &Context{Log: log.New(&buf, "", 0)}

	ctx.Debugf("hidden")
	assert.Empty(t, buf.String())

	ctx.Verbose = true
	ctx.Debugf("shown %d", 3)
	assert.Equal(t, "shown 3\n", buf.String())
}

func TestContext_NilSafe(t *testing.T) {
	var ctx *Context
	assert.NotPanics(t, func() {
		ctx.Printf("nothing")
		ctx.Debugf("nothing")
	})
}
