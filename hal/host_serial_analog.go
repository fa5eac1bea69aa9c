//go:build !tinygo

package hal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"go.bug.st/serial"
)

// ErrNoSample is returned by a serial channel before its first sample line.
var ErrNoSample = errors.New("no sample")

// serialAnalog reads "v0,v1,v2\n" lines of decimal counts from a port and
// serves the most recent value per channel.
type serialAnalog struct {
	mu     sync.Mutex
	port   io.ReadCloser
	names  []string
	latest []uint16
	n      int
	bad    int
	err    error
	done   chan struct{}
}

func openSerialAnalog(path string, baud, channels int) (*serialAnalog, error) {
	if baud <= 0 {
		baud = 115200
	}
	port, err := serial.Open(path, &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("hal: serial %s: %w", path, err)
	}
	return newSerialAnalog(port, channels), nil
}

func newSerialAnalog(port io.ReadCloser, channels int) *serialAnalog {
	a := &serialAnalog{
		port:   port,
		names:  analogNames("SER", channels),
		latest: make([]uint16, channels),
		done:   make(chan struct{}),
	}
	go a.readLoop()
	return a
}

func (a *serialAnalog) readLoop() {
	defer close(a.done)

	sc := bufio.NewScanner(a.port)
	buf := make([]uint16, 0, len(a.latest))
	for sc.Scan() {
		vals, err := parseSampleLine(sc.Text(), buf[:0])
		a.mu.Lock()
		if err != nil {
			a.bad++
		} else {
			a.n = copy(a.latest, vals)
		}
		a.mu.Unlock()
	}

	a.mu.Lock()
	a.err = sc.Err()
	if a.err == nil {
		a.err = io.EOF
	}
	a.mu.Unlock()
}

func (a *serialAnalog) ChannelCount() int { return len(a.latest) }

func (a *serialAnalog) Channel(id int) AnalogChannel {
	if id < 0 || id >= len(a.latest) {
		return nil
	}
	return serialChannel{a: a, id: id}
}

// BadLines returns how many malformed lines were skipped.
func (a *serialAnalog) BadLines() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.bad
}

func (a *serialAnalog) Close() error {
	err := a.port.Close()
	<-a.done
	return err
}

type serialChannel struct {
	a  *serialAnalog
	id int
}

func (c serialChannel) Name() string { return c.a.names[c.id] }

func (c serialChannel) Read() (uint16, error) {
	c.a.mu.Lock()
	defer c.a.mu.Unlock()
	if c.id >= c.a.n {
		if c.a.err != nil {
			return 0, fmt.Errorf("hal: serial: %w", c.a.err)
		}
		return 0, fmt.Errorf("hal: serial channel %d: %w", c.id, ErrNoSample)
	}
	return c.a.latest[c.id], nil
}

// parseSampleLine parses comma-separated decimal counts in [0, AnalogMax].
func parseSampleLine(line string, dst []uint16) ([]uint16, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, errors.New("empty line")
	}
	for i, f := range strings.Split(line, ",") {
		v, err := strconv.ParseUint(strings.TrimSpace(f), 10, 16)
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", i, err)
		}
		if v > AnalogMax {
			return nil, fmt.Errorf("field %d: %d out of range", i, v)
		}
		dst = append(dst, uint16(v))
	}
	return dst, nil
}
