package sanitize_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmviewer/tmviewer/pkg/webui/sanitize"
)

func TestSandboxIsolate(t *testing.T) {
	s := &sanitize.Sandbox{Class: "email-frame"}

	got, err := s.Isolate(`<p>hi "there"</p><script>alert(1)</script>`)
	require.NoError(t, err)

	out := string(got)
	assert.True(t, strings.HasPrefix(out, `<iframe sandbox="allow-same-origin"`))
	assert.NotContains(t, out, "allow-scripts")
	assert.Contains(t, out, `class="email-frame"`)
	assert.Contains(t, out, `srcdoc="`)
	assert.Contains(t, out, "&lt;p&gt;hi ")
	assert.NotContains(t, out, "script")
	assert.NotContains(t, out, "<p>", "document must be attribute escaped")
}

func TestSandboxIsolateNoClass(t *testing.T) {
	s := &sanitize.Sandbox{}

	got, err := s.Isolate("plain")
	require.NoError(t, err)
	assert.NotContains(t, string(got), "class=")
	assert.Contains(t, string(got), "plain")
}
