package main

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// readInput returns the contents of file, or of stdin when file is "-",
// or else the arguments joined by spaces. The second result names the
// input for positions.
func readInput(file string, args []string) ([]byte, string, error) {
	switch {
	case file == "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return data, "<stdin>", nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, "", fmt.Errorf("read %s: %w", file, err)
		}
		return data, file, nil
	case len(args) > 0:
		return []byte(strings.Join(args, " ")), "", nil
	default:
		return nil, "", fmt.Errorf("no input: pass declarations as arguments or use --file")
	}
}
