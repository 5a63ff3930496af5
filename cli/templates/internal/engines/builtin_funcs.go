package engines

import (
	"fmt"
	"strings"

	"github.com/ch-iv/litestar-manage/cli/util"
)

// commonTemplateFuncs are available in every engine.
var commonTemplateFuncs = map[string]func(string) string{
	"lower":       strings.ToLower,
	"upper":       strings.ToUpper,
	"snake":       util.SnakeCase,
	"pascal":      util.PascalCase,
	"cwdRelative": util.RelativeToCurrentWorkingDir,
}

// toStringMap converts template data into a map of variables.
func toStringMap(data interface{}) (map[string]interface{}, error) {
	switch vars := data.(type) {
	case nil:
		return map[string]interface{}{}, nil
	case map[string]string:
		result := make(map[string]interface{}, len(vars))
		for k, v := range vars {
			result[k] = v
		}
		return result, nil
	case map[string]interface{}:
		return vars, nil
	}
	return nil, fmt.Errorf("unsupported template data type %T", data)
}
