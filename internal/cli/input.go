package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// readLine is an indirection used to facilitate testing.
var readLine = ReadLine

// ReadLine prompts and reads a single trimmed line.
func ReadLine(reader *bufio.Reader, prompt string, out io.Writer) (string, error) {
	fmt.Fprintf(out, "%s: ", prompt)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
