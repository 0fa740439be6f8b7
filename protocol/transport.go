package protocol

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var (
	ErrAckTimeout      = errors.New("ACK timeout")
	ErrResponseTimeout = errors.New("response timeout")
	ErrClosed          = errors.New("transport closed")
)

// DefaultTimeout bounds the wait for an ACK in SendCommand.
const DefaultTimeout = 2 * time.Second

// HostTransport sends commands to an MCU and collects what it sends back.
// A background goroutine reads the port; ACKs and responses are queued
// separately so a response never satisfies an ACK wait.
type HostTransport struct {
	port io.ReadWriteCloser

	mu  sync.Mutex // serializes sends, guards seq
	seq uint8

	acks      chan Frame
	responses chan Frame

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewHostTransport starts reading port. Close stops the reader and closes port.
func NewHostTransport(port io.ReadWriteCloser) *HostTransport {
	t := &HostTransport{
		port:      port,
		seq:       SeqDest,
		acks:      make(chan Frame, 4),
		responses: make(chan Frame, 16),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	go t.readLoop()
	return t
}

// SendCommand sends one command with integer arguments and waits for its ACK.
func (t *HostTransport) SendCommand(id uint32, args ...uint32) error {
	return t.Send(EncodeCommand(id, args...), DefaultTimeout)
}

// Send frames payload, writes it and waits up to timeout for the ACK. When
// the MCU answers with a different expected sequence (after a host restart,
// say), the transport adopts it and retransmits once.
func (t *HostTransport) Send(payload []byte, timeout time.Duration) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	select {
	case <-t.stop:
		return ErrClosed
	default:
	}
	for attempt := 0; ; attempt++ {
		msg, err := EncodeFrame(t.seq, payload)
		if err != nil {
			return err
		}
		t.drainAcks()
		if err := t.write(msg); err != nil {
			return err
		}
		ack, err := t.waitAck(timeout)
		if err != nil {
			return err
		}
		want := NextSeq(t.seq)
		if ack.Sequence == want {
			t.seq = want
			return nil
		}
		if attempt == 1 {
			return fmt.Errorf("NAK: MCU expects sequence 0x%02x, sent 0x%02x", ack.Sequence, t.seq)
		}
		t.seq = ack.Sequence
	}
}

func (t *HostTransport) write(msg []byte) error {
	n, err := t.port.Write(msg)
	if err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}
	if n != len(msg) {
		return fmt.Errorf("incomplete write: %d/%d bytes", n, len(msg))
	}
	return nil
}

func (t *HostTransport) waitAck(timeout time.Duration) (Frame, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case ack := <-t.acks:
		return ack, nil
	case <-timer.C:
		return Frame{}, fmt.Errorf("%w after %v", ErrAckTimeout, timeout)
	case <-t.stop:
		return Frame{}, ErrClosed
	}
}

func (t *HostTransport) drainAcks() {
	for {
		select {
		case <-t.acks:
		default:
			return
		}
	}
}

// Receive returns the next response frame.
func (t *HostTransport) Receive(timeout time.Duration) (Frame, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case f := <-t.responses:
		return f, nil
	case <-timer.C:
		return Frame{}, fmt.Errorf("%w after %v", ErrResponseTimeout, timeout)
	case <-t.stop:
		return Frame{}, ErrClosed
	}
}

// Sequence returns the sequence byte the next command will carry.
func (t *HostTransport) Sequence() uint8 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.seq
}

func (t *HostTransport) readLoop() {
	defer close(t.done)

	var dec Decoder
	buf := make([]byte, 256)
	for {
		n, err := t.port.Read(buf)
		if n > 0 {
			dec.Write(buf[:n])
			for f, ok := dec.Next(); ok; f, ok = dec.Next() {
				t.dispatch(f)
			}
		}
		select {
		case <-t.stop:
			return
		default:
		}
		if err != nil {
			if errors.Is(err, os.ErrClosed) || errors.Is(err, io.ErrClosedPipe) {
				return
			}
			// Serial ports report read timeouts as io.EOF; keep polling.
			time.Sleep(10 * time.Millisecond)
		}
	}
}

func (t *HostTransport) dispatch(f Frame) {
	if f.IsAck() {
		select {
		case t.acks <- f:
		default:
		}
		return
	}
	select {
	case t.responses <- f:
	default:
		// Full: drop the oldest response.
		select {
		case <-t.responses:
		default:
		}
		t.responses <- f
	}
}

// Close stops the reader and closes the port.
func (t *HostTransport) Close() error {
	var err error
	t.closeOnce.Do(func() {
		close(t.stop)
		err = t.port.Close()
		<-t.done
	})
	return err
}
