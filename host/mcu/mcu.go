// Package mcu is the host-side client for a Gopper MCU: it fetches the
// data dictionary and pushes I2C bus settings computed by the calculator.
package mcu

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"twicalc/host/serial"
	"twicalc/protocol"
)

var (
	ErrNotConnected   = errors.New("not connected to MCU")
	ErrNoDictionary   = errors.New("dictionary not loaded")
	ErrUnknownCommand = errors.New("unknown command")
)

// Fixed command IDs every Klipper-protocol MCU assigns before the
// dictionary is known.
const (
	cmdIdentifyResponse = 0
	cmdIdentify         = 1

	identifyChunk   = 40
	identifyMaxRead = 1000
)

// MCU is a connection to a microcontroller.
type MCU struct {
	transport *protocol.HostTransport
	port      io.ReadWriteCloser

	dictionary     *Dictionary
	dictionaryData []byte

	// Progress, when set, receives retrieval progress lines.
	Progress io.Writer

	ResponseTimeout time.Duration
}

// NewMCU creates an MCU that is not yet connected.
func NewMCU() *MCU {
	return &MCU{ResponseTimeout: time.Second}
}

// Connect opens the serial device and attaches to it.
func (m *MCU) Connect(cfg *serial.Config) error {
	port, err := serial.Open(cfg)
	if err != nil {
		return err
	}
	if err := port.Flush(); err != nil {
		port.Close()
		return fmt.Errorf("failed to flush %s: %w", cfg.Device, err)
	}
	m.Attach(port)
	return nil
}

// Attach runs the protocol over an already open port.
func (m *MCU) Attach(port io.ReadWriteCloser) {
	m.port = port
	m.transport = protocol.NewHostTransport(port)
}

// Close closes the transport and the port under it.
func (m *MCU) Close() error {
	if m.transport == nil {
		return nil
	}
	err := m.transport.Close()
	m.transport = nil
	m.port = nil
	return err
}

// IsConnected reports whether a port is attached.
func (m *MCU) IsConnected() bool {
	return m.transport != nil
}

func (m *MCU) progressf(format string, args ...any) {
	if m.Progress != nil {
		fmt.Fprintf(m.Progress, format+"\n", args...)
	}
}

// RetrieveDictionary reads the data dictionary in identify chunks until the
// MCU returns a short one.
func (m *MCU) RetrieveDictionary() error {
	if m.transport == nil {
		return ErrNotConnected
	}

	m.progressf("Retrieving dictionary from MCU...")

	var buf bytes.Buffer
	offset := uint32(0)
	for i := 0; i < identifyMaxRead; i++ {
		chunk, err := m.identify(offset, identifyChunk)
		if err != nil {
			return fmt.Errorf("failed to retrieve dictionary chunk at offset %d: %w", offset, err)
		}
		buf.Write(chunk)
		offset += uint32(len(chunk))
		if len(chunk) < identifyChunk {
			break
		}
	}

	m.dictionaryData = buf.Bytes()
	m.progressf("Dictionary retrieved: %d bytes", len(m.dictionaryData))

	dict, err := ParseDictionary(m.dictionaryData)
	if err != nil {
		return err
	}
	m.dictionary = dict
	return nil
}

func (m *MCU) identify(offset uint32, count uint32) ([]byte, error) {
	if err := m.transport.SendCommand(cmdIdentify, offset, count); err != nil {
		return nil, fmt.Errorf("failed to send identify: %w", err)
	}

	for {
		resp, err := m.transport.Receive(m.ResponseTimeout)
		if err != nil {
			return nil, fmt.Errorf("failed to receive identify_response: %w", err)
		}

		payload := resp.Payload
		id, err := protocol.DecodeUint(&payload)
		if err != nil {
			return nil, fmt.Errorf("failed to decode response ID: %w", err)
		}
		if id != cmdIdentifyResponse {
			// Unsolicited output (stats, shutdown) from a running MCU.
			continue
		}

		got, err := protocol.DecodeUint(&payload)
		if err != nil {
			return nil, fmt.Errorf("failed to decode response offset: %w", err)
		}
		if got != offset {
			return nil, fmt.Errorf("offset mismatch: expected %d, got %d", offset, got)
		}
		data, err := protocol.DecodeBytes(&payload)
		if err != nil {
			return nil, fmt.Errorf("failed to decode response data: %w", err)
		}
		return append([]byte(nil), data...), nil
	}
}

// Dictionary returns the parsed dictionary, or nil before RetrieveDictionary.
func (m *MCU) Dictionary() *Dictionary {
	return m.dictionary
}

// DictionaryRaw returns the identify data as received.
func (m *MCU) DictionaryRaw() []byte {
	return m.dictionaryData
}

// ClockFrequencyHz returns the dictionary's CLOCK_FREQ constant.
func (m *MCU) ClockFrequencyHz() (float64, error) {
	if m.dictionary == nil {
		return 0, ErrNoDictionary
	}
	hz, ok := m.dictionary.Constant("CLOCK_FREQ")
	if !ok {
		return 0, errors.New("dictionary has no CLOCK_FREQ")
	}
	return hz, nil
}

// SendCommand sends the named command with integer arguments in
// dictionary order.
func (m *MCU) SendCommand(name string, args ...uint32) error {
	if m.transport == nil {
		return ErrNotConnected
	}
	if m.dictionary == nil {
		return ErrNoDictionary
	}

	id, ok := m.dictionary.CommandID(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	if err := m.transport.SendCommand(id, args...); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
