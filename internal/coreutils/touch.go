// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"context"

	"github.com/sandterm/sandterm/internal/vfs"
)

func newTouchCommand() *funcCommand {
	return &funcCommand{
		commandInfo: commandInfo{
			name:        "touch",
			synopsis:    "Create empty files or update timestamps",
			usage:       "touch FILE...",
			description: "Create each FILE if it does not exist, creating parent directories as needed.\nExisting files only have their modification time updated.",
			category:    CategoryFileSystem,
		},
		run: func(_ context.Context, hc *HandlerContext, args []string) Result {
			files := operands(args)
			if len(files) == 0 {
				return Failure("touch: missing file operand")
			}
			var w lineWriter
			for _, f := range files {
				if err := hc.FS().CreateFile(f); err != nil {
					w.fail("touch: cannot touch '%s': %s", f, vfs.Reason(err))
				}
			}
			return w.result()
		},
	}
}
