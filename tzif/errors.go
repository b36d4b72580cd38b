package tzif

import "fmt"

// Decode failures are reported as typed errors so callers can branch on
// the failure kind with errors.As. A failure aborts decoding of the file
// immediately; no partial structures are returned.

// FormatError reports a header that cannot be decoded at all: the input
// is shorter than the fixed 44-byte header, or one of the count fields
// is negative.
type FormatError struct {
	// Len is the input length when the header is truncated.
	Len int
	// Count names the offending field when a count is negative.
	Count string
	Value int32
}

func (e *FormatError) Error() string {
	if e.Count != "" {
		return fmt.Sprintf("tzif: negative %s in header: %d", e.Count, e.Value)
	}
	return fmt.Sprintf("tzif: header requires %d bytes, got %d", HeaderSize, e.Len)
}

// MagicMismatchError reports that the file does not start with the
// "TZif" magic sequence.
type MagicMismatchError struct {
	Got [4]byte
}

func (e *MagicMismatchError) Error() string {
	return fmt.Sprintf("tzif: invalid magic %q, want %q", e.Got[:], Magic[:])
}

// TruncatedBodyError reports a data block section that extends past the
// end of the input. Section names the first section that did not fit.
type TruncatedBodyError struct {
	Section string
	Need    int // bytes required by the section
	Have    int // bytes remaining in the buffer
}

func (e *TruncatedBodyError) Error() string {
	return fmt.Sprintf("tzif: truncated body: %s requires %d bytes, %d available (short by %d)",
		e.Section, e.Need, e.Have, e.Need-e.Have)
}

// IndexOutOfRangeError reports a reference that points outside its
// target collection: a transition type index at or beyond the local time
// type records, or a designation offset at or beyond the designation
// octets.
type IndexOutOfRangeError struct {
	Kind  string
	Index int
	Len   int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("tzif: %s index %d out of range [0, %d)", e.Kind, e.Index, e.Len)
}

// UnterminatedDesignationError reports a designation offset with no NUL
// octet at or after it within the designation octets.
type UnterminatedDesignationError struct {
	Index int
}

func (e *UnterminatedDesignationError) Error() string {
	return fmt.Sprintf("tzif: designation at index %d has no NUL terminator", e.Index)
}
