package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// PromptLine writes prompt to w and reads one line from r. The returned
// string is trimmed of surrounding whitespace.
func PromptLine(r io.Reader, w io.Writer, prompt string) (string, error) {
	fmt.Fprint(w, prompt)
	reader := bufio.NewReader(r)
	line, err := reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// resolveInputPath turns "/" into an fzf selection of PNG files under the
// working directory, falling back to a typed path when fzf is unavailable.
func resolveInputPath(r io.Reader, w io.Writer, path string) (string, error) {
	if path != "/" {
		return path, nil
	}
	sel, err := SelectFileWithFzf(".", w)
	if err == nil && sel != "" {
		fmt.Fprintf(w, " [fzf] %s\n", sel)
		return sel, nil
	}
	return PromptLine(r, w, "Enter path to PNG image: ")
}
