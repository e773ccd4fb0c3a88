package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// confirm asks a y/N question on the command's own streams.
func confirm(cmd *cobra.Command, question string) bool {
	return promptYesNo(cmd.InOrStdin(), cmd.OutOrStdout(), question+" [y/N]: ", false)
}

// promptYesNo returns defaultYes for an empty answer or closed input.
func promptYesNo(in io.Reader, out io.Writer, prompt string, defaultYes bool) bool {
	fmt.Fprint(out, prompt)

	answer, err := readPromptLine(in)
	if err != nil && !errors.Is(err, io.EOF) {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "":
		return defaultYes
	case "y", "yes":
		return true
	default:
		return false
	}
}

// readPromptLine reads up to LF or CR so Enter works in cooked and raw
// terminals. It reads a byte at a time to leave the rest of in untouched.
func readPromptLine(in io.Reader) (string, error) {
	var buf []byte
	var one [1]byte
	for {
		n, err := in.Read(one[:])
		if n > 0 {
			if one[0] == '\n' || one[0] == '\r' {
				return string(buf), nil
			}
			buf = append(buf, one[0])
		}
		if err != nil {
			if errors.Is(err, io.EOF) && len(buf) > 0 {
				return string(buf), nil
			}
			return string(buf), err
		}
	}
}
