package tzif

import (
	"fmt"
	"io"
)

// The encoders mirror the decoders byte for byte. They exist so tests
// and tools can synthesize wire-exact files; Encode(Decode(b)) reproduces
// the consumed prefix of b.

// Write writes the 44-byte header to w. The count fields are taken
// as-is; use Validate to check them against the body first.
func (h Header) Write(w io.Writer) error {
	var b [HeaderSize]byte
	copy(b[0:4], Magic[:])
	b[4] = byte(h.Version)
	copy(b[5:20], h.Reserved[:])
	order.PutUint32(b[20:24], uint32(h.Isutcnt))
	order.PutUint32(b[24:28], uint32(h.Isstdcnt))
	order.PutUint32(b[28:32], uint32(h.Leapcnt))
	order.PutUint32(b[32:36], uint32(h.Timecnt))
	order.PutUint32(b[36:40], uint32(h.Typecnt))
	order.PutUint32(b[40:44], uint32(h.Charcnt))
	_, err := w.Write(b[:])
	return err
}

// Write writes the 32-bit data block to w in wire order.
func (b Body) Write(w io.Writer) error {
	buf := make([]byte, 0, b.wireSize())
	for _, t := range b.TransitionTimes {
		buf = order.AppendUint32(buf, uint32(t))
	}
	buf = append(buf, b.TransitionTypes...)
	for _, t := range b.LocalTimeTypes {
		buf = order.AppendUint32(buf, uint32(t.Utoff))
		buf = append(buf, encodeBool(t.Dst), t.Idx)
	}
	buf = append(buf, b.Designations...)
	for _, l := range b.LeapSeconds {
		buf = order.AppendUint32(buf, uint32(l.Occur))
		buf = order.AppendUint32(buf, uint32(l.Corr))
	}
	for _, v := range b.StandardWall {
		buf = append(buf, encodeBool(v))
	}
	for _, v := range b.UTLocal {
		buf = append(buf, encodeBool(v))
	}
	_, err := w.Write(buf)
	return err
}

func (b Body) wireSize() int {
	return len(b.TransitionTimes)*timeSize +
		len(b.TransitionTypes) +
		len(b.LocalTimeTypes)*localTypeSize +
		len(b.Designations) +
		len(b.LeapSeconds)*leapRecordSize +
		len(b.StandardWall) +
		len(b.UTLocal)
}

func encodeBool(v bool) byte {
	if v {
		return 1
	}
	return 0
}

// Encode writes the file's header and data block to w.
func (f File) Encode(w io.Writer) error {
	if err := f.Header.Write(w); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := f.Body.Write(w); err != nil {
		return fmt.Errorf("write data block: %w", err)
	}
	return nil
}
