package command

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
)

// Clipboard receives copied text.
type Clipboard interface {
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return errors.New("no clipboard utility available")
	}
	return clipboard.WriteAll(text)
}

// SystemClipboard writes through the platform clipboard utility.
func SystemClipboard() Clipboard {
	return systemClipboard{}
}

// CopyText copies text to cb.
func CopyText(cb Clipboard, text string) Action {
	return func() (string, error) {
		if cb == nil {
			return "", errors.New("clipboard unavailable")
		}
		if err := cb.WriteAll(text); err != nil {
			return "", fmt.Errorf("copy to clipboard: %w", err)
		}
		return fmt.Sprintf("Copied %q", text), nil
	}
}

// WriteFile writes data to path, creating the parent directory when needed.
func WriteFile(path string, data []byte) Action {
	return func() (string, error) {
		if dir := filepath.Dir(path); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return "", fmt.Errorf("create export directory: %w", err)
			}
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return "", fmt.Errorf("write export: %w", err)
		}
		return fmt.Sprintf("Exported to %s", path), nil
	}
}
