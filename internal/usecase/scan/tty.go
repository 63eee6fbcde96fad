package scan

import (
	"os"

	"golang.org/x/term"
)

// IsTTY checks if the given file descriptor is a terminal. Useful for
// telling an interactive session apart from CI or piped output.
func IsTTY(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

// IsOutputTerminal checks if stdout is a TTY. Color output defaults on when
// this is true and off otherwise (pipes, redirects, CI logs).
func IsOutputTerminal() bool {
	return IsTTY(os.Stdout.Fd())
}
