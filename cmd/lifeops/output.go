// ABOUTME: Output helpers shared by the report commands.
// ABOUTME: Writes rendered reports to stdout or a file.
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// writeOutput renders to path, or to the command's stdout when path is empty.
// File output is rendered fully before the file is written.
func writeOutput(cmd *cobra.Command, path string, render func(io.Writer) error) error {
	if path == "" {
		return render(cmd.OutOrStdout())
	}

	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	fmt.Fprintln(cmd.ErrOrStderr(), color.GreenString("✓ Exported to %s", path))
	return nil
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
