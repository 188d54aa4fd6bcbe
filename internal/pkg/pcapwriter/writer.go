// Package pcapwriter saves packets that produced matches to a new pcap file.
package pcapwriter

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/google/gopacket/pcapgo"

	"github.com/endorses/patmatch/internal/pkg/logger"
	"github.com/endorses/patmatch/internal/pkg/pcapsource"
)

// DefaultSnapLen is the snapshot length written to the file header.
const DefaultSnapLen = 65536

// ErrClosed is returned when writing to a closed Writer.
var ErrClosed = errors.New("writer is closed")

// Writer appends packets to a pcap file. The file header is written with the
// link type of the first packet, so an unused Writer leaves an empty file.
type Writer struct {
	filePath string
	snapLen  uint32

	mu            sync.Mutex
	file          *os.File
	writer        *pcapgo.Writer
	headerWritten bool
	closed        atomic.Bool

	packetCount  atomic.Int64
	bytesWritten atomic.Int64
}

// Config for the pcap writer
type Config struct {
	FilePath string
	SnapLen  uint32 // 0 means DefaultSnapLen
}

// New creates the file at config.FilePath, truncating an existing one.
func New(config Config) (*Writer, error) {
	if config.FilePath == "" {
		return nil, errors.New("file path cannot be empty")
	}
	if config.SnapLen == 0 {
		config.SnapLen = DefaultSnapLen
	}

	// #nosec G304 -- Path is supplied by the operator on the command line
	file, err := os.Create(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create pcap file: %w", err)
	}

	logger.Debug("Created pcap writer", "file", config.FilePath)
	return &Writer{
		filePath: config.FilePath,
		snapLen:  config.SnapLen,
		file:     file,
		writer:   pcapgo.NewWriter(file),
	}, nil
}

// WritePayload writes the full frame the payload was taken from.
func (w *Writer) WritePayload(p pcapsource.Payload) error {
	if w.closed.Load() {
		return ErrClosed
	}
	if len(p.Frame) == 0 {
		return fmt.Errorf("packet %d has no captured frame", p.Index)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.headerWritten {
		if err := w.writer.WriteFileHeader(w.snapLen, p.LinkType); err != nil {
			return fmt.Errorf("failed to write pcap header: %w", err)
		}
		w.headerWritten = true
	}

	ci := p.CaptureInfo
	ci.CaptureLength = len(p.Frame)
	if ci.Length < ci.CaptureLength {
		ci.Length = ci.CaptureLength
	}
	if err := w.writer.WritePacket(ci, p.Frame); err != nil {
		return fmt.Errorf("failed to write packet %d: %w", p.Index, err)
	}

	w.packetCount.Add(1)
	w.bytesWritten.Add(int64(len(p.Frame)))
	return nil
}

// Close flushes and closes the file. Closing twice is a no-op.
func (w *Writer) Close() error {
	if w.closed.Swap(true) {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.file.Sync(); err != nil {
		logger.Warn("Failed to sync pcap file", "error", err, "file", w.filePath)
	}
	if err := w.file.Close(); err != nil {
		return fmt.Errorf("failed to close pcap file: %w", err)
	}

	logger.Info("Closed pcap writer",
		"file", w.filePath,
		"packets", w.packetCount.Load(),
		"bytes", w.bytesWritten.Load())
	return nil
}

// Stats returns how many packets and frame bytes have been written.
func (w *Writer) Stats() (packetCount, bytesWritten int64) {
	return w.packetCount.Load(), w.bytesWritten.Load()
}

// FilePath returns the file path being written to
func (w *Writer) FilePath() string {
	return w.filePath
}
