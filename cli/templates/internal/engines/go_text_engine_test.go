package engines

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const templateText = `app_name = "{{.app_name}}"
module = "{{ app_module }}"
title = "{{ pascal .app_name }}"`

const (
	templateFileName = "settings.py.jinja"
	resultFileName   = "settings.py"
)

func TestTemplateFileRender(t *testing.T) {
	workDir := t.TempDir()

	srcFileName := filepath.Join(workDir, templateFileName)
	require.NoError(t, os.WriteFile(srcFileName, []byte(templateText), 0o600))

	dstFileName := filepath.Join(workDir, resultFileName)
	data := map[string]string{
		"app_name":   "test_app",
		"app_module": "test_app",
	}

	engine := GoTextEngine{}
	require.NoError(t, engine.RenderFile(srcFileName, dstFileName, data))

	// Rendered file is a new file, source permissions are not carried over.
	stat, err := os.Stat(dstFileName)
	require.NoError(t, err)
	assert.NotEqual(t, os.FileMode(0o600), stat.Mode().Perm())

	buf, err := os.ReadFile(dstFileName)
	require.NoError(t, err)

	const expected = `app_name = "test_app"
module = "test_app"
title = "TestApp"`
	require.Equal(t, expected, string(buf))
}

func TestTemplateFileRenderMissingValues(t *testing.T) {
	workDir := t.TempDir()

	srcFileName := filepath.Join(workDir, templateFileName)
	require.NoError(t, os.WriteFile(srcFileName, []byte(templateText), 0o666))

	dstFileName := filepath.Join(workDir, resultFileName)
	data := map[string]string{"app_name": "test_app"} // app_module is missing.
	engine := GoTextEngine{}
	err := engine.RenderFile(srcFileName, dstFileName, data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `function "app_module" not defined`)
	assert.NoFileExists(t, dstFileName)

	data = map[string]string{"app_module": "test_app"} // app_name is missing.
	err = engine.RenderFile(srcFileName, dstFileName, data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `map has no entry for key "app_name"`)
}

func TestTextRendering(t *testing.T) {
	data := map[string]string{
		"hello":     "Hello",
		"world":     "world",
		"dash-name": "ignored as a func",
	}
	engine := GoTextEngine{}

	actual, err := engine.RenderText(`{{.hello}} {{world}}!`, data)
	require.NoError(t, err)
	require.Equal(t, "Hello world!", actual)

	actual, err = engine.RenderText(`{{lower .hello}}_{{upper world}}`, data)
	require.NoError(t, err)
	require.Equal(t, "hello_WORLD", actual)

	actual, err = engine.RenderText(`{{index . "dash-name"}}`, data)
	require.NoError(t, err)
	require.Equal(t, "ignored as a func", actual)
}

func TestTextRenderingErrors(t *testing.T) {
	engine := GoTextEngine{}

	_, err := engine.RenderText(`{{.hello}`, map[string]string{"hello": "Hello"})
	require.Error(t, err)

	_, err = engine.RenderText(`{{.hello}}`, 42)
	require.EqualError(t, err, "unsupported template data type int")

	actual, err := engine.RenderText(`plain`, nil)
	require.NoError(t, err)
	require.Equal(t, "plain", actual)
}
