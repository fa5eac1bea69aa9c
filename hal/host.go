//go:build !tinygo

package hal

import (
	"io"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// HostConfig selects the host backends.
type HostConfig struct {
	// SerialPort, when set, reads analog samples from this port instead of
	// the simulated waveforms.
	SerialPort string
	Baud       int
	// Channels is the number of analog channels to expose.
	Channels int
	// Verbose enables debug-level logging (LED toggles).
	Verbose bool
}

type hostHAL struct {
	logger  *hostLogger
	led     *hostLED
	fb      *hostFramebuffer
	analog  Analog
	t       *hostTime
	closers []io.Closer
}

// New returns a host HAL with simulated analog inputs.
func New() HAL {
	h, _ := newHost(HostConfig{})
	return h
}

func newHost(cfg HostConfig) (*hostHAL, error) {
	if cfg.Channels <= 0 {
		cfg.Channels = 3
	}
	zl := newZapLogger(cfg.Verbose)
	h := &hostHAL{
		logger: &hostLogger{log: zl},
		led:    &hostLED{log: zl},
		fb:     newHostFramebuffer(320, 320),
		t:      newHostTime(),
	}

	if cfg.SerialPort != "" {
		sa, err := openSerialAnalog(cfg.SerialPort, cfg.Baud, cfg.Channels)
		if err != nil {
			return nil, err
		}
		h.analog = sa
		h.closers = append(h.closers, sa)
		zl.Info("analog: serial", zap.String("port", cfg.SerialPort), zap.Int("baud", cfg.Baud))
		return h, nil
	}

	// Simulated axes sweep at different rates so each angle moves on its own.
	var chans []AnalogChannel
	for i, name := range analogNames("SIM", cfg.Channels) {
		period := time.Duration(4+2*i) * time.Second
		chans = append(chans, newWaveChannel(name, period, time.Duration(i)*time.Second))
	}
	h.analog = newVirtualAnalog(chans)
	return h, nil
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) LED() LED         { return h.led }
func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Analog() Analog   { return h.analog }
func (h *hostHAL) Time() Time       { return h.t }

func (h *hostHAL) close() {
	for _, c := range h.closers {
		_ = c.Close()
	}
	_ = h.logger.log.Sync()
}

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

func newZapLogger(verbose bool) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Encoding:         "console",
		EncoderConfig:    enc,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    true,
	}
	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// hostLogger adapts zap to the line-oriented Logger interface.
type hostLogger struct {
	log *zap.Logger
}

func (l *hostLogger) WriteLineString(s string) { l.log.Info(s) }
func (l *hostLogger) WriteLineBytes(b []byte)  { l.log.Info(string(b)) }

type hostLED struct {
	log *zap.Logger
	on  bool
}

func (l *hostLED) High() {
	l.on = true
	l.log.Debug("led", zap.Bool("on", true))
}

func (l *hostLED) Low() {
	l.on = false
	l.log.Debug("led", zap.Bool("on", false))
}
