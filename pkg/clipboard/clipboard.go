// Package clipboard writes text to the host clipboard.
package clipboard

import (
	"errors"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
	"github.com/rs/zerolog/log"
)

// ErrUnavailable is returned when neither the native clipboard nor a terminal is available.
var ErrUnavailable = errors.New("clipboard unavailable")

// Writer places text on a clipboard.
type Writer interface {
	WriteText(s string) error
}

// System writes through the native clipboard, falling back to an OSC 52 escape sequence on
// Terminal when the native clipboard cannot be used, for example over SSH.
type System struct {
	Terminal io.Writer
}

// NewSystem returns a System clipboard using stderr as the fallback terminal.
func NewSystem() *System {
	return &System{Terminal: os.Stderr}
}

var (
	nativeUnsupported = func() bool { return clipboard.Unsupported }
	nativeWrite       = clipboard.WriteAll
)

// WriteText implements Writer.
func (c *System) WriteText(s string) error {
	if !nativeUnsupported() {
		err := nativeWrite(s)
		if err == nil {
			return nil
		}
		log.Debug().Str("module", "clipboard").Err(err).Msg("Native clipboard failed")
	}
	if c.Terminal == nil {
		return ErrUnavailable
	}
	_, err := osc52.New(s).WriteTo(c.Terminal)
	return err
}

// Func adapts a plain function to the Writer interface.
type Func func(s string) error

// WriteText implements Writer.
func (f Func) WriteText(s string) error {
	return f(s)
}
