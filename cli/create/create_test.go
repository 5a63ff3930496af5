package create

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ch-iv/litestar-manage/cli/config"
	create_ctx "github.com/ch-iv/litestar-manage/cli/create/context"
	"github.com/ch-iv/litestar-manage/cli/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCreateCtx(t *testing.T, kind create_ctx.Kind, dst string) (*create_ctx.CreateCtx,
	*bytes.Buffer,
) {
	t.Helper()
	var out bytes.Buffer
	createCtx := &create_ctx.CreateCtx{
		Kind:           kind,
		App:            create_ctx.AppCtx{AppName: "TestApp"},
		Resource:       create_ctx.ResourceCtx{ResourceName: "User"},
		DestinationDir: dst,
		NoFormat:       true,
	}
	require.NoError(t, FillCtx(&config.CliOpts{}, createCtx, &out))
	return createCtx, &out
}

func listFiles(t *testing.T, dir string) []string {
	t.Helper()
	files := []string{}
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		require.NoError(t, err)
		if !info.IsDir() {
			rel, err := filepath.Rel(dir, path)
			require.NoError(t, err)
			files = append(files, rel)
		}
		return nil
	})
	require.NoError(t, err)
	return files
}

func TestCreateApp(t *testing.T) {
	dst := t.TempDir()
	createCtx, out := newCreateCtx(t, create_ctx.KindApp, dst)
	require.NoError(t, Run(createCtx))

	assert.ElementsMatch(t, []string{
		".gitignore",
		"README.md",
		"pyproject.toml",
		filepath.Join("src", "__init__.py"),
		filepath.Join("src", "app_controller.py"),
		filepath.Join("src", "app_service.py"),
		filepath.Join("src", "main.py"),
		filepath.Join("tests", "__init__.py"),
		filepath.Join("tests", "test_app.py"),
	}, listFiles(t, dst))

	buf, err := os.ReadFile(filepath.Join(dst, "src", "app_service.py"))
	require.NoError(t, err)
	assert.Contains(t, string(buf), `app_name = "TestApp"`)

	buf, err = os.ReadFile(filepath.Join(dst, "pyproject.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(buf), `name = "test_app"`)

	assert.Contains(t, out.String(), "Project TestApp created in "+dst)
}

func TestCreateAppWithDocker(t *testing.T) {
	dst := t.TempDir()
	createCtx, _ := newCreateCtx(t, create_ctx.KindApp, dst)
	createCtx.App.IncludeDocker = true
	require.NoError(t, Run(createCtx))

	buf, err := os.ReadFile(filepath.Join(dst, "Dockerfile"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(buf), "FROM python:"))
}

func TestCreateAppTwice(t *testing.T) {
	dst := t.TempDir()
	createCtx, _ := newCreateCtx(t, create_ctx.KindApp, dst)
	require.NoError(t, Run(createCtx))
	before := listFiles(t, dst)
	mainPath := filepath.Join(dst, "src", "main.py")
	require.NoError(t, os.WriteFile(mainPath, []byte("changed"), 0644))

	createCtx, out := newCreateCtx(t, create_ctx.KindApp, dst)
	createCtx.App.AppName = "OtherApp"
	require.NoError(t, Run(createCtx))
	assert.Equal(t, MsgAlreadyInitialized+"\n", out.String())
	assert.Equal(t, before, listFiles(t, dst))

	buf, err := os.ReadFile(mainPath)
	require.NoError(t, err)
	assert.Equal(t, "changed", string(buf))
}

func TestCreateResource(t *testing.T) {
	dst := t.TempDir()

	createCtx, out := newCreateCtx(t, create_ctx.KindResource, dst)
	require.NoError(t, Run(createCtx))
	assert.Equal(t, MsgNotInitialized+"\n", out.String())
	assert.NoDirExists(t, filepath.Join(dst, "src"))

	appCtx, _ := newCreateCtx(t, create_ctx.KindApp, dst)
	require.NoError(t, Run(appCtx))

	createCtx, out = newCreateCtx(t, create_ctx.KindResource, dst)
	require.NoError(t, Run(createCtx))
	resourceDir := filepath.Join(dst, "src", "user")
	assert.ElementsMatch(t, []string{
		"__init__.py", "controller.py", "service.py", "repository.py", "dto.py", "models.py",
	}, listFiles(t, resourceDir))
	assert.Contains(t, out.String(), "Resource User created in "+filepath.Join("src", "user"))

	buf, err := os.ReadFile(filepath.Join(resourceDir, "controller.py"))
	require.NoError(t, err)
	assert.Contains(t, string(buf), "class UserController(Controller):")
	assert.Contains(t, string(buf), `path = "/user"`)
	assert.NotContains(t, string(buf), "{{")

	// Application files are untouched.
	assert.FileExists(t, filepath.Join(dst, "src", "main.py"))
}

func TestCreateWithVars(t *testing.T) {
	templatesDir := t.TempDir()
	templateDir := filepath.Join(templatesDir, "custom")
	require.NoError(t, os.MkdirAll(templateDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(templateDir, "MANIFEST.yaml"),
		[]byte("description: Custom\nvars:\n  - name: license\n    default: MIT\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(templateDir, "LICENSE.jinja"),
		[]byte("{{.license}} {{.app_name}} {{.port}}\n"), 0644))

	varsFile := filepath.Join(t.TempDir(), "vars.txt")
	require.NoError(t, os.WriteFile(varsFile, []byte("port=8000\n"), 0644))

	dst := t.TempDir()
	var out bytes.Buffer
	createCtx := &create_ctx.CreateCtx{
		Kind:           create_ctx.KindApp,
		App:            create_ctx.AppCtx{AppName: "TestApp"},
		DestinationDir: dst,
		TemplateName:   "custom",
		VarsFile:       varsFile,
		VarsFromCli:    []string{"license=BSD"},
		NoFormat:       true,
	}
	cliOpts := &config.CliOpts{
		Templates:      []config.TemplateOpts{{Path: templatesDir}},
		TemplateEngine: "gotext",
	}
	require.NoError(t, FillCtx(cliOpts, createCtx, &out))
	require.NoError(t, Run(createCtx))

	buf, err := os.ReadFile(filepath.Join(dst, "LICENSE"))
	require.NoError(t, err)
	assert.Equal(t, "BSD TestApp 8000\n", string(buf))
	assert.NoFileExists(t, filepath.Join(dst, "MANIFEST.yaml"))

	infos, err := ListTemplates(cliOpts)
	require.NoError(t, err)
	require.Len(t, infos, 3)
	assert.Equal(t, TemplateInfo{Name: "custom", Location: templateDir, Description: "Custom"},
		infos[2])
	assert.Equal(t, "app", infos[0].Name)
	assert.Equal(t, "built-in", infos[0].Location)
	assert.NotEmpty(t, infos[0].Description)
}

func TestCreateErrors(t *testing.T) {
	dst := t.TempDir()
	createCtx, _ := newCreateCtx(t, create_ctx.KindApp, dst)
	createCtx.TemplateName = "missing"
	require.ErrorIs(t, Run(createCtx), util.ErrNotFound)

	createCtx, _ = newCreateCtx(t, create_ctx.KindApp, dst)
	createCtx.App.AppName = ""
	require.ErrorIs(t, Run(createCtx), util.ErrInvalidArgument)

	createCtx, _ = newCreateCtx(t, create_ctx.KindApp, dst)
	createCtx.VarsFromCli = []string{"broken"}
	require.Error(t, Run(createCtx))

	assert.Empty(t, listFiles(t, dst))
}

func TestCreateAppFormatterNotFound(t *testing.T) {
	emptyDir := t.TempDir()
	t.Setenv("PATH", emptyDir)
	t.Setenv("HOME", emptyDir)
	t.Setenv("PYTHONUSERBASE", emptyDir)
	t.Setenv("VIRTUAL_ENV", emptyDir)

	dst := t.TempDir()
	createCtx, out := newCreateCtx(t, create_ctx.KindApp, dst)
	createCtx.NoFormat = false
	require.ErrorIs(t, Run(createCtx), util.ErrNotFound)
	assert.NotContains(t, out.String(), "created in")
}
