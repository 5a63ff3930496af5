package templates

import (
	"testing"

	"github.com/ch-iv/litestar-manage/cli/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine(t *testing.T) {
	for _, name := range append(Names(), "") {
		engine, err := NewEngine(name)
		require.NoError(t, err)
		text, err := engine.RenderText("{{ app_name }}", map[string]string{"app_name": "app"})
		require.NoError(t, err, name)
		assert.Equal(t, "app", text)
	}

	_, err := NewEngine("mustache")
	require.ErrorIs(t, err, util.ErrInvalidArgument)
}

func TestDefaultEngineIsStrict(t *testing.T) {
	_, err := NewDefaultEngine().RenderText("{{ app_name }}", map[string]string{})
	require.Error(t, err)
}
