package steps

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ch-iv/litestar-manage/cli/config"
	create_ctx "github.com/ch-iv/litestar-manage/cli/create/context"
	"github.com/ch-iv/litestar-manage/cli/create/internal/app_template"
	"github.com/ch-iv/litestar-manage/cli/templates"
	"github.com/ch-iv/litestar-manage/cli/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCtx(t *testing.T, kind create_ctx.Kind) (*create_ctx.CreateCtx, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	wd, err := os.Getwd()
	require.NoError(t, err)
	return &create_ctx.CreateCtx{
		Kind:           kind,
		App:            create_ctx.AppCtx{AppName: "TestApp"},
		Resource:       create_ctx.ResourceCtx{ResourceName: "User"},
		WorkDir:        wd,
		DestinationDir: t.TempDir(),
		Writer:         &out,
		NoFormat:       true,
	}, &out
}

func TestCheckProjectStateApp(t *testing.T) {
	ctx, out := newCtx(t, create_ctx.KindApp)
	templateCtx := app_template.NewTemplateContext()

	require.NoError(t, CheckProjectState{}.Run(ctx, &templateCtx))
	assert.False(t, templateCtx.Skip)
	assert.Equal(t, ctx.DestinationDir, templateCtx.TargetPath)
	assert.Empty(t, out.String())

	require.NoError(t, os.Mkdir(filepath.Join(ctx.DestinationDir, "venv"), 0755))
	templateCtx = app_template.NewTemplateContext()
	require.NoError(t, CheckProjectState{}.Run(ctx, &templateCtx))
	assert.True(t, templateCtx.Skip)
	assert.Equal(t, MsgAlreadyInitialized+"\n", out.String())
}

func TestCheckProjectStateResource(t *testing.T) {
	ctx, out := newCtx(t, create_ctx.KindResource)
	templateCtx := app_template.NewTemplateContext()

	require.NoError(t, CheckProjectState{}.Run(ctx, &templateCtx))
	assert.True(t, templateCtx.Skip)
	assert.Equal(t, MsgNotInitialized+"\n", out.String())

	require.NoError(t, os.Mkdir(filepath.Join(ctx.DestinationDir, "src"), 0755))
	templateCtx = app_template.NewTemplateContext()
	require.NoError(t, CheckProjectState{}.Run(ctx, &templateCtx))
	assert.False(t, templateCtx.Skip)
	assert.Equal(t, filepath.Join(ctx.DestinationDir, "src", "user"), templateCtx.TargetPath)
}

func TestIsProjectInitializedCustomVenvDir(t *testing.T) {
	ctx, _ := newCtx(t, create_ctx.KindApp)
	ctx.CliOpts = &config.CliOpts{Venv: &config.VenvOpts{Dir: ".venv"}}
	assert.Equal(t, ".venv", VenvDirName(ctx))

	assert.False(t, IsProjectInitialized(ctx.DestinationDir, ".venv"))
	require.NoError(t, os.Mkdir(filepath.Join(ctx.DestinationDir, ".venv"), 0755))
	assert.True(t, IsProjectInitialized(ctx.DestinationDir, ".venv"))
	assert.False(t, IsProjectInitialized(ctx.DestinationDir, "venv"))
}

func TestFillTemplateVars(t *testing.T) {
	ctx, _ := newCtx(t, create_ctx.KindApp)
	templateCtx := app_template.NewTemplateContext()
	require.NoError(t, FillTemplateVars{}.Run(ctx, &templateCtx))
	assert.Equal(t, map[string]string{
		"app_name": "TestApp", "app_module": "test_app", "dockerfile": "",
	}, templateCtx.Vars)

	ctx.App.AppName = ""
	require.ErrorIs(t, FillTemplateVars{}.Run(ctx, &templateCtx), util.ErrInvalidArgument)
}

func TestFillTemplateVarsFromCli(t *testing.T) {
	ctx, _ := newCtx(t, create_ctx.KindApp)
	templateCtx := app_template.NewTemplateContext()
	templateCtx.Vars["app_name"] = "TestApp"

	ctx.VarsFromCli = []string{"app_name=Other", " license=MIT "}
	require.NoError(t, FillTemplateVarsFromCli{}.Run(ctx, &templateCtx))
	assert.Equal(t, map[string]string{"app_name": "Other", "license": "MIT"}, templateCtx.Vars)

	for _, def := range []string{"novalue=", "=value", "no_separator"} {
		ctx.VarsFromCli = []string{def}
		err := FillTemplateVarsFromCli{}.Run(ctx, &templateCtx)
		require.Error(t, err, def)
		assert.Contains(t, err.Error(), "wrong variable definition format")
	}

	ctx.VarsFromCli = []string{"bad-name=value"}
	require.ErrorIs(t, FillTemplateVarsFromCli{}.Run(ctx, &templateCtx), util.ErrInvalidArgument)
}

func TestLoadVarsFile(t *testing.T) {
	ctx, _ := newCtx(t, create_ctx.KindApp)
	templateCtx := app_template.NewTemplateContext()
	templateCtx.Vars["app_name"] = "TestApp"

	ctx.VarsFile = "testdata/vars-file.txt"
	require.NoError(t, LoadVarsFile{}.Run(ctx, &templateCtx))
	assert.Equal(t, map[string]string{"app_name": "VarsApp", "license": "MIT"},
		templateCtx.Vars)

	templateCtx = app_template.NewTemplateContext()
	ctx.VarsFile = "testdata/vars-file.yaml"
	require.NoError(t, LoadVarsFile{}.Run(ctx, &templateCtx))
	assert.Equal(t, map[string]string{"app_name": "YamlApp", "port": "8000"}, templateCtx.Vars)

	templateCtx = app_template.NewTemplateContext()
	ctx.VarsFile = ""
	require.NoError(t, LoadVarsFile{}.Run(ctx, &templateCtx))
	assert.Empty(t, templateCtx.Vars)
}

func TestLoadVarsFileErrors(t *testing.T) {
	ctx, _ := newCtx(t, create_ctx.KindApp)
	templateCtx := app_template.NewTemplateContext()

	ctx.VarsFile = "testdata/non-existing-vars-file.txt"
	err := LoadVarsFile{}.Run(ctx, &templateCtx)
	require.ErrorIs(t, err, os.ErrNotExist)

	ctx.VarsFile = "testdata/invalid_vars_file.txt"
	err = LoadVarsFile{}.Run(ctx, &templateCtx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wrong variable definition format: app_name=")

	ctx.VarsFile = "testdata/invalid_vars_file.yaml"
	err = LoadVarsFile{}.Run(ctx, &templateCtx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `variable "nested" must be a scalar value`)
}

// prepareTemplate creates a temporary directory with the given template files.
func prepareTemplate(t *testing.T, files map[string]string) (*create_ctx.CreateCtx,
	*app_template.TemplateCtx, *bytes.Buffer,
) {
	t.Helper()
	ctx, out := newCtx(t, create_ctx.KindApp)
	templateCtx := app_template.NewTemplateContext()
	require.NoError(t, CreateTemporaryTemplateDirectory{}.Run(ctx, &templateCtx))
	t.Cleanup(func() { os.RemoveAll(templateCtx.TempDir) })

	for name, content := range files {
		path := filepath.Join(templateCtx.TemplatePath, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0755))
	}
	templateCtx.TargetPath = ctx.DestinationDir
	return ctx, &templateCtx, out
}

func TestCopyTemplateBuiltin(t *testing.T) {
	ctx, out := newCtx(t, create_ctx.KindApp)
	templateCtx := app_template.NewTemplateContext()
	require.NoError(t, CreateTemporaryTemplateDirectory{}.Run(ctx, &templateCtx))
	defer os.RemoveAll(templateCtx.TempDir)
	assert.DirExists(t, templateCtx.TempDir)
	assert.Empty(t, out.String())

	ctx.TemplateName = "app"
	require.NoError(t, CopyTemplate{}.Run(ctx, &templateCtx))
	assert.FileExists(t, filepath.Join(templateCtx.TemplatePath, ".gitignore"))
	assert.FileExists(t, filepath.Join(templateCtx.TemplatePath, "src", "__init__.py"))
	assert.FileExists(t, filepath.Join(templateCtx.TemplatePath, "{{dockerfile}}.jinja"))

	// Copied embedded files must be removable.
	require.NoError(t, Cleanup{}.Run(ctx, &templateCtx))
	assert.Empty(t, templateCtx.TempDir)
}

func TestCopyTemplateFromSearchPath(t *testing.T) {
	ctx, _ := newCtx(t, create_ctx.KindApp)
	searchPath := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(searchPath, "custom"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(searchPath, "custom", "main.py.jinja"),
		[]byte("{{.app_name}}"), 0644))

	templateCtx := app_template.NewTemplateContext()
	require.NoError(t, CreateTemporaryTemplateDirectory{}.Run(ctx, &templateCtx))
	defer os.RemoveAll(templateCtx.TempDir)

	ctx.TemplateSearchPaths = []string{filepath.Join(searchPath, "missing"), searchPath}
	ctx.TemplateName = "custom"
	ctx.Engine = templates.EngineGoText
	require.NoError(t, CopyTemplate{}.Run(ctx, &templateCtx))
	assert.FileExists(t, filepath.Join(templateCtx.TemplatePath, "main.py.jinja"))
	assert.Equal(t, templates.NewGoTextEngine(), templateCtx.Engine)

	ctx.TemplateName = "unknown"
	require.ErrorIs(t, CopyTemplate{}.Run(ctx, &templateCtx), util.ErrNotFound)
}

func TestLoadManifest(t *testing.T) {
	ctx, templateCtx, _ := prepareTemplate(t, map[string]string{
		"MANIFEST.yaml": `description: Test
follow-up-message: Run {{ app_name }}
vars:
  - name: license
    default: MIT
    re: ^[A-Z]+$
post-hook: hooks/post.sh
`,
		"hooks/post.sh": "#!/bin/sh\ntouch hook-done\n",
		"main.py":       "",
	})

	require.NoError(t, LoadManifest{}.Run(ctx, templateCtx))
	assert.True(t, templateCtx.IsManifestPresent)
	assert.Equal(t, "MIT", templateCtx.Vars["license"])
	assert.NoFileExists(t, filepath.Join(templateCtx.TemplatePath, "MANIFEST.yaml"))
	assert.NoFileExists(t, filepath.Join(templateCtx.TemplatePath, "hooks", "post.sh"))
	assert.Equal(t, filepath.Join(templateCtx.TempDir, "post.sh"), templateCtx.HookPath)
}

func TestLoadManifestVarValidation(t *testing.T) {
	ctx, templateCtx, _ := prepareTemplate(t, map[string]string{
		"MANIFEST.yaml": "vars:\n  - name: license\n    re: ^[A-Z]+$\n",
	})
	templateCtx.Vars["license"] = "mit"

	require.ErrorIs(t, LoadManifest{}.Run(ctx, templateCtx), util.ErrInvalidArgument)
}

func TestLoadManifestMissing(t *testing.T) {
	ctx, templateCtx, _ := prepareTemplate(t, map[string]string{"main.py": ""})
	require.NoError(t, LoadManifest{}.Run(ctx, templateCtx))
	assert.False(t, templateCtx.IsManifestPresent)
}

func TestRenderTemplateAndHook(t *testing.T) {
	ctx, templateCtx, out := prepareTemplate(t, map[string]string{
		"MANIFEST.yaml":               "follow-up-message: Run {{ app_name }}\npost-hook: post.sh\n",
		"post.sh":                     "#!/bin/sh\ntouch \"$1/hook-done\"\n",
		"src/{{app_module}}.py.jinja": "NAME = '{{ app_name }}'\n",
	})
	templateCtx.Vars = create_ctx.AppCtx{AppName: "TestApp"}.Vars()

	require.NoError(t, LoadManifest{}.Run(ctx, templateCtx))
	require.NoError(t, RenderTemplate{}.Run(ctx, templateCtx))
	assert.Equal(t, []string{filepath.Join(ctx.DestinationDir, "src", "test_app.py")},
		templateCtx.Files)
	assert.NoFileExists(t, filepath.Join(ctx.DestinationDir, "post.sh"))

	require.NoError(t, RunHook{}.Run(ctx, templateCtx))
	assert.FileExists(t, filepath.Join(ctx.DestinationDir, "hook-done"))

	require.NoError(t, PrintFollowUpMessage{}.Run(ctx, templateCtx))
	assert.Equal(t, "Run TestApp\n", out.String())
}

func TestRunHookFailure(t *testing.T) {
	ctx, templateCtx, _ := prepareTemplate(t, map[string]string{
		"MANIFEST.yaml": "post-hook: fail.sh\n",
		"fail.sh":       "#!/bin/sh\nexit 1\n",
	})
	require.NoError(t, LoadManifest{}.Run(ctx, templateCtx))

	err := RunHook{}.Run(ctx, templateCtx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error executing fail.sh")
}

func TestRenderTemplateError(t *testing.T) {
	ctx, templateCtx, _ := prepareTemplate(t, map[string]string{
		"main.py.jinja": "{{ undefined_var }}",
	})
	err := RenderTemplate{}.Run(ctx, templateCtx)
	require.ErrorIs(t, err, util.ErrTemplate)
}

func TestPrintFollowUpMessageDefault(t *testing.T) {
	ctx, templateCtx, out := prepareTemplate(t, nil)
	require.NoError(t, PrintFollowUpMessage{}.Run(ctx, templateCtx))
	assert.Contains(t, out.String(), "Project TestApp created in "+ctx.DestinationDir)

	out.Reset()
	ctx.Kind = create_ctx.KindResource
	templateCtx.TargetPath = filepath.Join(ctx.DestinationDir, "src", "user")
	require.NoError(t, PrintFollowUpMessage{}.Run(ctx, templateCtx))
	assert.Contains(t, out.String(), "Resource User created in "+filepath.Join("src", "user"))
}

type fakeBuilder struct {
	path     string
	packages []string
}

func (b *fakeBuilder) InitVenv(path string) error {
	b.path = path
	return nil
}

func (b *fakeBuilder) InstallPackages(names []string) error {
	b.packages = names
	return nil
}

func TestBootstrapVenv(t *testing.T) {
	ctx, templateCtx, _ := prepareTemplate(t, nil)
	builder := &fakeBuilder{}

	// No venv requested.
	require.NoError(t, BootstrapVenv{Builder: builder}.Run(ctx, templateCtx))
	assert.Empty(t, builder.path)

	ctx.VenvKind = VenvKindPip
	ctx.Packages = []string{"litestar"}
	require.NoError(t, BootstrapVenv{Builder: builder}.Run(ctx, templateCtx))
	assert.Equal(t, filepath.Join(ctx.DestinationDir, "venv"), builder.path)
	assert.Equal(t, []string{"litestar"}, builder.packages)

	ctx.VenvKind = "conda"
	require.ErrorIs(t, BootstrapVenv{}.Run(ctx, templateCtx), util.ErrInvalidArgument)
}

func TestRunFormatterDisabled(t *testing.T) {
	ctx, templateCtx, _ := prepareTemplate(t, nil)
	ctx.NoFormat = false
	ctx.CliOpts = &config.CliOpts{Formatter: &config.FormatterOpts{Enabled: false}}
	require.NoError(t, RunFormatter{}.Run(ctx, templateCtx))
	assert.True(t, ctx.NoFormat)
}

func TestRunFormatterMissingExecutable(t *testing.T) {
	ctx, templateCtx, _ := prepareTemplate(t, nil)
	ctx.NoFormat = false
	ctx.CliOpts = &config.CliOpts{Formatter: &config.FormatterOpts{
		Enabled:    true,
		Executable: filepath.Join(t.TempDir(), "ruff"),
	}}
	err := RunFormatter{}.Run(ctx, templateCtx)
	require.ErrorIs(t, err, util.ErrNotFound)
	assert.Contains(t, err.Error(), "--no-format")
}
