package main

import (
	"log"

	"github.com/ch-iv/litestar-manage/cli/cmd"
	"github.com/ch-iv/litestar-manage/cli/util"
	"github.com/ch-iv/litestar-manage/cli/version"
)

// panicError wraps a recovered panic value into an internal error report.
func panicError(r any) error {
	return util.InternalError("Unhandled internal error: %s", version.GetVersion, r)
}

func main() {
	defer func() {
		// Report a panic as an internal error instead of a stack trace.
		if r := recover(); r != nil {
			log.Fatalf("%s", panicError(r))
		}
	}()

	cmd.InitRoot()
	cmd.Execute()
}
