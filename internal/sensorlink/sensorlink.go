// Package sensorlink reads live depth telemetry from a dive computer or
// pressure sensor attached over a serial line and feeds it into a running
// decompression session, the same way a surface console mirrors a diver's
// computer in real time.
package sensorlink

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	serial "github.com/tarm/goserial"

	"github.com/deepwater-eng/buhlmann"
	"github.com/deepwater-eng/buhlmann/internal/log"
	"github.com/deepwater-eng/buhlmann/internal/session"
	"github.com/deepwater-eng/buhlmann/pkg/gas"
	"github.com/deepwater-eng/buhlmann/pkg/units"
)

// reconnectDelay is how long the link waits before retrying a failed serial
// connection, mirroring a surface-console tolerating a loose connector.
const reconnectDelay = 10 * time.Second

// Config describes how to reach and interpret the sensor link.
type Config struct {
	Device       string
	BaudRate     int
	SessionID    string
	DefaultGasO2 float64
	DefaultGasHe float64
}

// Reading is one line of telemetry: a depth sample, optionally carrying a
// gas switch if the diver's onboard computer reports fO2/fHe alongside depth.
type Reading struct {
	DepthM float64
	FO2    float64
	FHe    float64
}

// Link owns a serial connection to a depth sensor and applies each reading
// it reports to a session's decompression model.
type Link struct {
	config  Config
	sess    *session.Session
	rwc     io.ReadWriteCloser
	lastAt  time.Time
	mu      sync.Mutex
	closing bool
}

// New builds a Link bound to sess. The link is not yet connected; call Run
// to open the serial port and begin streaming readings.
func New(config Config, sess *session.Session) *Link {
	return &Link{config: config, sess: sess, lastAt: time.Time{}}
}

// Run connects to the serial device and applies readings to the session
// until ctx is cancelled, reconnecting on I/O errors.
func (l *Link) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := l.connect(); err != nil {
			log.Errorf("sensorlink: connecting to %s: %v", l.config.Device, err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(reconnectDelay):
				continue
			}
		}

		err := l.stream(ctx)
		l.mu.Lock()
		closing := l.closing
		l.mu.Unlock()
		if closing || ctx.Err() != nil {
			return ctx.Err()
		}
		log.Errorf("sensorlink: stream from %s ended: %v; reconnecting", l.config.Device, err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(reconnectDelay):
		}
	}
}

func (l *Link) connect() error {
	sc := &serial.Config{Name: l.config.Device, Baud: l.config.BaudRate}
	log.Debugf("sensorlink: opening serial port %s at %d baud", l.config.Device, l.config.BaudRate)
	rwc, err := serial.OpenPort(sc)
	if err != nil {
		return fmt.Errorf("opening serial port %s: %w", l.config.Device, err)
	}
	l.rwc = rwc
	return nil
}

// stream reads newline-delimited CSV readings until the connection breaks
// or ctx is cancelled.
func (l *Link) stream(ctx context.Context) error {
	defer l.rwc.Close()

	lines := make(chan string, 8)
	errCh := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(l.rwc)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		errCh <- scanner.Err()
	}()

	currentGas, err := gas.New(l.config.DefaultGasO2, l.config.DefaultGasHe)
	if err != nil {
		return fmt.Errorf("invalid default gas: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			l.mu.Lock()
			l.closing = true
			l.mu.Unlock()
			return ctx.Err()
		case err := <-errCh:
			if err == nil {
				err = io.EOF
			}
			return err
		case line := <-lines:
			reading, err := parseLine(line)
			if err != nil {
				log.Warnf("sensorlink: skipping malformed line %q: %v", line, err)
				continue
			}
			if reading.FO2 > 0 {
				g, err := gas.New(reading.FO2, reading.FHe)
				if err != nil {
					log.Warnf("sensorlink: ignoring invalid gas in reading: %v", err)
				} else {
					currentGas = g
				}
			}
			l.applyReading(reading, currentGas)
		}
	}
}

// applyReading advances the session's model to the reported depth over the
// elapsed wall-clock time since the previous reading, using the Schreiner
// path since depth changes between samples.
func (l *Link) applyReading(reading Reading, g gas.Gas) {
	now := time.Now()

	l.mu.Lock()
	last := l.lastAt
	l.lastAt = now
	l.mu.Unlock()

	if last.IsZero() {
		return
	}
	dt := now.Sub(last)
	if dt <= 0 {
		return
	}

	err := l.sess.WithLock(func(m *buhlmann.Model) error {
		return m.RecordTravel(units.Depth(reading.DepthM), units.Time(dt.Seconds()), g)
	})
	if err != nil {
		log.Errorf("sensorlink: applying reading: %v", err)
	}
}

// parseLine parses a CSV telemetry line of the form "depth_m[,fo2,fhe]".
func parseLine(line string) (Reading, error) {
	fields := strings.Split(strings.TrimSpace(line), ",")
	if len(fields) == 0 || fields[0] == "" {
		return Reading{}, fmt.Errorf("empty line")
	}
	depth, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return Reading{}, fmt.Errorf("parsing depth: %w", err)
	}
	reading := Reading{DepthM: depth}
	if len(fields) >= 3 {
		fo2, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return Reading{}, fmt.Errorf("parsing fO2: %w", err)
		}
		fhe, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return Reading{}, fmt.Errorf("parsing fHe: %w", err)
		}
		reading.FO2 = fo2
		reading.FHe = fhe
	}
	return reading, nil
}
