package cli

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
)

// SelectFileWithFzf launches fzf over the PNG files under startDir and returns
// the selected path. The preview pane uses the best renderer the terminal
// supports. Requires find, bash and fzf on PATH.
func SelectFileWithFzf(startDir string, w io.Writer) (string, error) {
	if _, err := exec.LookPath("fzf"); err != nil {
		return "", fmt.Errorf("fzf not found in PATH: %w", err)
	}
	cmdStr := fmt.Sprintf(
		"find %s -type f -iname '*.png' | fzf --height 100%% --border --prompt='Textures> ' --ansi --preview=%q --preview-window='right:60%%'",
		strconv.Quote(startDir),
		fzfPreviewCommand(),
	)
	cmd := exec.Command("bash", "-lc", cmdStr)

	var out bytes.Buffer
	cmd.Stdout = &out

	err := cmd.Run()
	// clear preview images left behind by kitty
	clearKittyImages(w)
	if err != nil {
		return "", fmt.Errorf("error running fzf for files: %w", err)
	}

	selection := strings.TrimSpace(out.String())
	if selection == "" {
		return "", fmt.Errorf("no file selected")
	}
	return selection, nil
}

// fzfPreviewCommand picks the --preview command for the detected terminal.
// fzf's preview takes a single shell line, so fallbacks are chained with ||.
func fzfPreviewCommand() string {
	const chafa = "chafa --fill=block --symbols=block -s 80x40 {} 2>/dev/null"
	switch {
	case isKitty():
		return "printf \"\\x1b_Ga=d\\x1b\\\\\"; kitty +kitten icat --silent {} 2>/dev/null || " + chafa
	case isInlineImageCapable():
		return "imgcat {} 2>/dev/null || " + chafa
	case isSixelCapable():
		return "img2sixel {} 2>/dev/null || " + chafa
	}
	return chafa
}

// clearKittyImages emits the kitty graphics "delete" control sequence.
// Terminals that don't understand it ignore it.
func clearKittyImages(w io.Writer) {
	fmt.Fprint(w, "\x1b_Ga=d\x1b\\")
}
