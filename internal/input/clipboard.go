package input

import (
	"errors"

	"github.com/atotto/clipboard"
)

var errUnsupportedClipboard = errors.New("no clipboard utility available")

// SystemClipboard reads the desktop clipboard through xclip/xsel, pbpaste
// or the Windows API, whichever the host provides.
type SystemClipboard struct{}

func (SystemClipboard) ReadAll() (string, error) {
	if clipboard.Unsupported {
		return "", errUnsupportedClipboard
	}
	return clipboard.ReadAll()
}
