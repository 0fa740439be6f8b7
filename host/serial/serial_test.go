package serial

import (
	"errors"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
)

func TestDefaultConfig(t *testing.T) {
	c := qt.New(t)
	cfg := DefaultConfig("/dev/ttyACM0")
	c.Assert(cfg.Device, qt.Equals, "/dev/ttyACM0")
	c.Assert(cfg.Baud, qt.Equals, 250000)
	c.Assert(cfg.Timeout(), qt.Equals, 100*time.Millisecond)
}

func TestOpenWithoutDevice(t *testing.T) {
	c := qt.New(t)
	_, err := Open(nil)
	c.Assert(errors.Is(err, ErrNoDevice), qt.IsTrue)

	_, err = Open(DefaultConfig(""))
	c.Assert(errors.Is(err, ErrNoDevice), qt.IsTrue)
}
