package common

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func IsInteractiveTerminal(command *cobra.Command) bool {
	return IsTerminalReader(command.InOrStdin()) && IsTerminalWriter(command.OutOrStdout())
}

func HasPipedInput(command *cobra.Command) bool {
	file, ok := command.InOrStdin().(*os.File)
	if !ok {
		return true
	}
	return !term.IsTerminal(int(file.Fd()))
}

func IsTerminalReader(reader io.Reader) bool {
	file, ok := reader.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

func IsTerminalWriter(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}
