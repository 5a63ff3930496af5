package engines

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/flosch/pongo2/v6"
)

// JinjaEngine renders Jinja-like templates ({{ app_name }}, {% if docker %}) with pongo2.
// Unlike Jinja, an undefined variable used in an output expression is an error.
type JinjaEngine struct {
}

var (
	// exprHeadRe captures the leading identifier of an output expression.
	exprHeadRe = regexp.MustCompile(`\{\{-?\s*([A-Za-z_][A-Za-z0-9_]*)`)
	// forBindRe captures loop variables.
	forBindRe = regexp.MustCompile(
		`\{%-?\s*for\s+([A-Za-z_][A-Za-z0-9_]*)(?:\s*,\s*([A-Za-z_][A-Za-z0-9_]*))?\s+in\s`)
	// assignBindRe captures names bound by set and with tags.
	assignBindRe = regexp.MustCompile(
		`\{%-?\s*(?:set|with)\s+([A-Za-z_][A-Za-z0-9_]*)\s*=`)
	// macroBindRe captures a macro name and its parameter list.
	macroBindRe = regexp.MustCompile(
		`\{%-?\s*macro\s+([A-Za-z_][A-Za-z0-9_]*)\s*\(([^)]*)\)`)
	// macroParamRe captures a parameter name, optionally followed by a default value.
	macroParamRe = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_]*)`)
	// commentRe matches template comments.
	commentRe = regexp.MustCompile(`(?s)\{#.*?#\}`)
	// verbatimRe matches blocks whose content is output as is.
	verbatimRe = regexp.MustCompile(
		`(?s)\{%-?\s*verbatim\s*-?%\}.*?\{%-?\s*endverbatim\s*-?%\}`)

	literalNames = map[string]bool{
		"true": true, "false": true, "True": true, "False": true,
		"none": true, "None": true, "nil": true, "forloop": true,
	}
)

func init() {
	// Generated files are source code, not HTML.
	pongo2.SetAutoescape(false)

	for name, fn := range commonTemplateFuncs {
		if pongo2.FilterExists(name) {
			continue
		}
		fn := fn
		pongo2.RegisterFilter(name,
			func(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
				return pongo2.AsValue(fn(in.String())), nil
			})
	}
}

// checkUndefined returns an error if the template outputs a variable missing in ctx.
func checkUndefined(text string, ctx pongo2.Context) error {
	text = commentRe.ReplaceAllString(text, "")
	text = verbatimRe.ReplaceAllString(text, "")

	bound := make(map[string]bool)
	for _, match := range forBindRe.FindAllStringSubmatch(text, -1) {
		bound[match[1]] = true
		if match[2] != "" {
			bound[match[2]] = true
		}
	}
	for _, match := range assignBindRe.FindAllStringSubmatch(text, -1) {
		bound[match[1]] = true
	}
	for _, match := range macroBindRe.FindAllStringSubmatch(text, -1) {
		bound[match[1]] = true
		for _, param := range strings.Split(match[2], ",") {
			if name := macroParamRe.FindStringSubmatch(param); name != nil {
				bound[name[1]] = true
			}
		}
	}

	var undefined []string
	seen := make(map[string]bool)
	for _, match := range exprHeadRe.FindAllStringSubmatch(text, -1) {
		name := match[1]
		if _, found := ctx[name]; found || bound[name] || literalNames[name] || seen[name] {
			continue
		}
		seen[name] = true
		undefined = append(undefined, name)
	}

	if len(undefined) > 0 {
		sort.Strings(undefined)
		return fmt.Errorf("undefined variable: %s", strings.Join(undefined, ", "))
	}
	return nil
}

func (JinjaEngine) execute(name, text string, data interface{}) (string, error) {
	vars, err := toStringMap(data)
	if err != nil {
		return "", err
	}
	ctx := pongo2.Context(vars)

	if err = checkUndefined(text, ctx); err != nil {
		return "", fmt.Errorf("template execution failed: %s: %s", name, err)
	}

	tpl, err := pongo2.FromString(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s: %s", name, err)
	}

	out, err := tpl.Execute(ctx)
	if err != nil {
		return "", fmt.Errorf("template execution failed: %s", err)
	}
	return out, nil
}

// RenderFile renders srcPath template to dstPath using pongo2.
func (engine JinjaEngine) RenderFile(srcPath string, dstPath string, data interface{}) error {
	text, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("error reading %s: %w", srcPath, err)
	}

	rendered, err := engine.execute(srcPath, string(text), data)
	if err != nil {
		return err
	}

	if err = os.WriteFile(dstPath, []byte(rendered), 0644); err != nil {
		return fmt.Errorf("error creating %s: %w", dstPath, err)
	}
	return nil
}

// RenderText renders in text using pongo2.
func (engine JinjaEngine) RenderText(in string, data interface{}) (string, error) {
	return engine.execute(in, in, data)
}
