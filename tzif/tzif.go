// Package tzif decodes the TZif file format defined by RFC 8536.
// https://datatracker.ietf.org/doc/html/rfc8536
//
// Only the version 1 header and 32-bit data block are decoded. Version 2+
// files start with the same 32-bit block, so Decode works on every TZif
// version and leaves the 64-bit block and footer untouched after the
// consumed bytes.
package tzif

import (
	"encoding/binary"
	"fmt"
	"strings"
	"unicode/utf8"
)

// NOTE: All multi-octet integer values MUST be stored in network octet
// order format (high-order octet first, otherwise known as big-endian),
// with all bits significant. Signed integer values MUST be represented
// using two's complement.
var order = binary.BigEndian

// Version is an octet identifying the version of the file's format.
// In V1, time values are 32bit (four-octet) and in V2 upwards time values
// are 64bit (eight-octet). The version byte is preserved verbatim on
// decode; an unknown value is not an error.
type Version byte

const (
	// V1 represents a version 1 TZif file. The file contains only the
	// version 1 header and data block.
	V1 Version = 0x00
	// V2 represents a version 2 TZif file. The file contains the version 1
	// header and data block, a version 2+ header and data block, and a
	// footer.
	V2 Version = '2'
	// V3 represents a version 3 TZif file. Like V2, but the footer TZ
	// string may use the extensions of RFC 8536 section 3.3.1.
	V3 Version = '3'
	// V4 represents a version 4 TZif file. Not in RFC 8536; specified by
	// the tzfile(5) man page.
	V4 Version = '4'
)

func (v Version) String() string {
	switch v {
	case V1:
		return "V1 (0x00)"
	case V2:
		return "V2 (0x32)"
	case V3:
		return "V3 (0x33)"
	case V4:
		return "V4 (0x34)"
	default:
		return fmt.Sprintf("<undefined version (%d)>", byte(v))
	}
}

// Magic is the four-octet ASCII sequence "TZif" (0x54 0x5A 0x69 0x66)
// which identifies the file as utilizing the Time Zone Information Format.
var Magic = [4]byte{'T', 'Z', 'i', 'f'}

// HeaderSize is the fixed size of a TZif header in bytes.
const HeaderSize = 44

// Header is the header of a TZif file.
//
// A TZif header is structured as follows (the lengths of multi-octet
// fields are shown in parentheses):
//
//	+---------------+---+
//	|  magic    (4) |ver|
//	+---------------+---+---------------------------------------+
//	|           [unused - reserved for future use] (15)         |
//	+---------------+---------------+---------------+-----------+
//	|  isutcnt  (4) |  isstdcnt (4) |  leapcnt  (4) |
//	+---------------+---------------+---------------+
//	|  timecnt  (4) |  typecnt  (4) |  charcnt  (4) |
//	+---------------+---------------+---------------+
//
// The counts are decoded as signed 32-bit integers. The format defines
// them as counts, so a negative value is malformed input and rejected by
// DecodeHeader. Once decoded, the header is the sole source of truth for
// slicing the data block.
type Header struct {
	// Version is an octet identifying the version of the file's format.
	Version Version
	// Reserved for future use.
	Reserved [15]byte

	// Isutcnt is the number of UT/local indicators contained in the data
	// block -- MUST either be zero or equal to "typecnt".
	Isutcnt int32
	// Isstdcnt is the number of standard/wall indicators contained in the
	// data block -- MUST either be zero or equal to "typecnt".
	Isstdcnt int32
	// Leapcnt is the number of leap-second records contained in the data
	// block.
	Leapcnt int32
	// Timecnt is the number of transition times contained in the data
	// block.
	Timecnt int32
	// Typecnt is the number of local time type records contained in the
	// data block -- MUST NOT be zero.
	Typecnt int32
	// Charcnt is the total number of octets used by the set of time zone
	// designations contained in the data block, including the trailing
	// NUL octet of the last designation.
	Charcnt int32
}

// Wire sizes of the data block elements. These are format constants, not
// derived from the in-memory layout of the Go types.
const (
	timeSize       = 4 // V1 transition time / leap occurrence
	localTypeSize  = 6 // local time type record, no padding on the wire
	leapRecordSize = timeSize + 4
)

// DecodeHeader decodes the fixed 44-byte header at the start of b.
//
// It fails with *FormatError if b holds fewer than 44 bytes or any count
// is negative, and with *MagicMismatchError if the magic sequence is
// wrong. The version byte is stored as-is; deciding whether a version is
// understood is left to the caller.
func DecodeHeader(b []byte) (Header, error) {
	var h Header
	if len(b) < HeaderSize {
		return h, &FormatError{Len: len(b)}
	}
	if [4]byte(b[0:4]) != Magic {
		return h, &MagicMismatchError{Got: [4]byte(b[0:4])}
	}
	h.Version = Version(b[4])
	copy(h.Reserved[:], b[5:20])
	h.Isutcnt = int32(order.Uint32(b[20:24]))
	h.Isstdcnt = int32(order.Uint32(b[24:28]))
	h.Leapcnt = int32(order.Uint32(b[28:32]))
	h.Timecnt = int32(order.Uint32(b[32:36]))
	h.Typecnt = int32(order.Uint32(b[36:40]))
	h.Charcnt = int32(order.Uint32(b[40:44]))

	if err := h.checkCounts(); err != nil {
		return Header{}, err
	}
	return h, nil
}

// checkCounts rejects negative count fields. The format defines the
// fields as counts; a negative value can only come from malformed input.
func (h Header) checkCounts() error {
	for _, c := range []struct {
		name  string
		value int32
	}{
		{"isutcnt", h.Isutcnt},
		{"isstdcnt", h.Isstdcnt},
		{"leapcnt", h.Leapcnt},
		{"timecnt", h.Timecnt},
		{"typecnt", h.Typecnt},
		{"charcnt", h.Charcnt},
	} {
		if c.value < 0 {
			return &FormatError{Count: c.name, Value: c.value}
		}
	}
	return nil
}

// LocalTimeType is a local time type record. Each record occupies six
// octets on the wire:
//
//	+---------------+---+---+
//	|  utoff (4)    |dst|idx|
//	+---------------+---+---+
type LocalTimeType struct {
	// Utoff is the number of seconds to be added to UT in order to
	// determine local time.
	Utoff int32
	// Dst indicates whether local time should be considered Daylight
	// Saving Time.
	Dst bool
	// Idx is a zero-based octet index into the time zone designations,
	// selecting the NUL-terminated designation string starting at that
	// position.
	Idx uint8
}

// LeapSecond is a leap-second record:
//
//	+---------------+---------------+
//	|  occur (4)    |  corr (4)     |
//	+---------------+---------------+
type LeapSecond struct {
	// Occur is the UNIX leap time value at which the correction occurs.
	Occur int32
	// Corr is the accumulated correction on or after the occurrence.
	Corr int32
}

// Body is the 32-bit data block of a TZif file. The sections appear in
// this exact order on the wire, with no gaps or padding between them:
//
//	+---------------------------------------------------------+
//	|  transition times          (timecnt x 4)                |
//	+---------------------------------------------------------+
//	|  transition types          (timecnt)                    |
//	+---------------------------------------------------------+
//	|  local time type records   (typecnt x 6)                |
//	+---------------------------------------------------------+
//	|  time zone designations    (charcnt)                    |
//	+---------------------------------------------------------+
//	|  leap-second records       (leapcnt x 8)                |
//	+---------------------------------------------------------+
//	|  standard/wall indicators  (isstdcnt)                   |
//	+---------------------------------------------------------+
//	|  UT/local indicators       (isutcnt)                    |
//	+---------------------------------------------------------+
type Body struct {
	// TransitionTimes is a series of four-octet UNIX leap-time values
	// sorted in strictly ascending order. Each value is a transition time
	// at which the rules for computing local time may change.
	TransitionTimes []int32

	// TransitionTypes holds, for each transition time, a zero-based index
	// into LocalTimeTypes. Each index MUST be in the range
	// [0, "typecnt" - 1]; the constraint is not expressible on the wire
	// and is enforced by Type at dereference time.
	TransitionTypes []uint8

	// LocalTimeTypes is the series of local time type records.
	LocalTimeTypes []LocalTimeType

	// Designations holds the designation octets decoded as a string:
	// NUL-terminated names, back to back, indexed by byte offset.
	// Invalid UTF-8 sequences are replaced with U+FFFD rather than
	// rejected; embedded NUL octets are preserved.
	Designations string

	// LeapSeconds are the leap-second records in file order. No ordering
	// or deduplication checks are applied here.
	LeapSeconds []LeapSecond

	// StandardWall indicates per local time type whether its transition
	// times were specified as standard time (true) or wall-clock time.
	StandardWall []bool

	// UTLocal indicates per local time type whether its transition times
	// were specified as UT (true) or local time.
	UTLocal []bool
}

// cursor slices sections off a byte buffer, failing with a
// *TruncatedBodyError that names the section which did not fit.
type cursor struct {
	buf []byte
	off int
}

func (c *cursor) section(name string, n int) ([]byte, error) {
	if rest := len(c.buf) - c.off; n > rest {
		return nil, &TruncatedBodyError{Section: name, Need: n, Have: rest}
	}
	b := c.buf[c.off : c.off+n]
	c.off += n
	return b, nil
}

// DecodeBody decodes the 32-bit data block that follows the header.
// b are the bytes after the 44-byte header; h supplies the section
// counts. Bytes past the end of the block (the version 2+ block and
// footer) are ignored.
//
// Multi-octet fields are big-endian. The six-octet local time type
// records are decoded by explicit byte offsets; host struct layout never
// enters into it. Indicator octets decode permissively: 1 is true,
// anything else is false.
func DecodeBody(b []byte, h Header) (Body, error) {
	if err := h.checkCounts(); err != nil {
		return Body{}, err
	}
	var (
		body Body
		cur  = cursor{buf: b}
	)

	sec, err := cur.section("transition times", int(h.Timecnt)*timeSize)
	if err != nil {
		return Body{}, err
	}
	body.TransitionTimes = make([]int32, h.Timecnt)
	for i := range body.TransitionTimes {
		body.TransitionTimes[i] = int32(order.Uint32(sec[i*timeSize:]))
	}

	sec, err = cur.section("transition types", int(h.Timecnt))
	if err != nil {
		return Body{}, err
	}
	body.TransitionTypes = append([]uint8(nil), sec...)

	sec, err = cur.section("local time type records", int(h.Typecnt)*localTypeSize)
	if err != nil {
		return Body{}, err
	}
	body.LocalTimeTypes = make([]LocalTimeType, h.Typecnt)
	for i := range body.LocalTimeTypes {
		rec := sec[i*localTypeSize:]
		body.LocalTimeTypes[i] = LocalTimeType{
			Utoff: int32(order.Uint32(rec[0:4])),
			Dst:   rec[4] == 1,
			Idx:   rec[5],
		}
	}

	sec, err = cur.section("time zone designations", int(h.Charcnt))
	if err != nil {
		return Body{}, err
	}
	body.Designations = strings.ToValidUTF8(string(sec), string(utf8.RuneError))

	sec, err = cur.section("leap second records", int(h.Leapcnt)*leapRecordSize)
	if err != nil {
		return Body{}, err
	}
	body.LeapSeconds = make([]LeapSecond, h.Leapcnt)
	for i := range body.LeapSeconds {
		rec := sec[i*leapRecordSize:]
		body.LeapSeconds[i] = LeapSecond{
			Occur: int32(order.Uint32(rec[0:4])),
			Corr:  int32(order.Uint32(rec[4:8])),
		}
	}

	sec, err = cur.section("standard/wall indicators", int(h.Isstdcnt))
	if err != nil {
		return Body{}, err
	}
	body.StandardWall = decodeIndicators(sec)

	sec, err = cur.section("UT/local indicators", int(h.Isutcnt))
	if err != nil {
		return Body{}, err
	}
	body.UTLocal = decodeIndicators(sec)

	return body, nil
}

func decodeIndicators(b []byte) []bool {
	out := make([]bool, len(b))
	for i, v := range b {
		out[i] = v == 1
	}
	return out
}

// Type returns the local time type record at index i.
func (b Body) Type(i uint8) (LocalTimeType, error) {
	if int(i) >= len(b.LocalTimeTypes) {
		return LocalTimeType{}, &IndexOutOfRangeError{
			Kind:  "local time type",
			Index: int(i),
			Len:   len(b.LocalTimeTypes),
		}
	}
	return b.LocalTimeTypes[i], nil
}

// Designation returns the NUL-terminated designation string starting at
// byte offset start in the designation octets, without the terminator.
// An offset outside the octets (including one past the end) fails with
// *IndexOutOfRangeError; an in-range offset with no NUL octet at or
// after it fails with *UnterminatedDesignationError.
func (b Body) Designation(start int) (string, error) {
	if start < 0 || start >= len(b.Designations) {
		return "", &IndexOutOfRangeError{
			Kind:  "designation",
			Index: start,
			Len:   len(b.Designations),
		}
	}
	end := strings.IndexByte(b.Designations[start:], 0)
	if end < 0 {
		return "", &UnterminatedDesignationError{Index: start}
	}
	return b.Designations[start : start+end], nil
}

// File is a decoded TZif file: the version 1 header and 32-bit data
// block. For version 2+ files this is the leading compatibility block;
// the 64-bit block and footer that follow are not decoded.
type File struct {
	Header Header
	Body   Body
}

// Decode decodes a TZif file from the given byte buffer. The buffer must
// hold the complete file contents; Decode itself performs no I/O.
//
// Decoding is pure: the same buffer always decodes to a deep-equal File,
// and a failure returns no partial result.
func Decode(b []byte) (File, error) {
	h, err := DecodeHeader(b)
	if err != nil {
		return File{}, err
	}
	body, err := DecodeBody(b[HeaderSize:], h)
	if err != nil {
		return File{}, err
	}
	return File{Header: h, Body: body}, nil
}
