package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPage = `<html>
<header><title>Integration</title></header>
<body>
<h1>Heading</h1>
<p>Some text with a <a HREF="next.html">link</a>.</p>
<dl><dt>term</dt><dd>definition</dd></dl>
</body>
</html>`

func writePage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "index.html")
	require.NoError(t, os.WriteFile(path, []byte(testPage), 0o644))
	return path
}

func TestRun_Dumps(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run([]string{"-tree", "-list", writePage(t)}, &stdout, &stderr)
	require.NoError(t, err)

	out := stdout.String()
	assert.Contains(t, out, "title: Integration")
	assert.Contains(t, out, `a href="next.html"`)
	assert.Contains(t, out, `text_run same_line "link" {color=#0000ff underline hyperlink=next.html}`)
	assert.Contains(t, out, "block_break")
}

func TestRun_RendersPNG(t *testing.T) {
	out := filepath.Join(t.TempDir(), "page.png")
	var stdout, stderr bytes.Buffer
	err := run([]string{"-w", "320", "-h", "240", "-o", out, writePage(t)}, &stdout, &stderr)
	require.NoError(t, err)
	assert.FileExists(t, out)
}

func TestRun_Errors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.Error(t, run(nil, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "Usage: minibrowse")

	err := run([]string{filepath.Join(t.TempDir(), "missing.html")}, &stdout, &stderr)
	require.Error(t, err)

	err = run([]string{"-config", filepath.Join(t.TempDir(), "none.toml"), writePage(t)}, &stdout, &stderr)
	require.Error(t, err)
}
