package errors

import "fmt"

// EmptyInputError is returned when no segments could be produced from the input.
type EmptyInputError struct{}

func (e *EmptyInputError) Error() string {
	return "no segments found in input"
}

// FieldCountError means a segment is shorter than its highest required position.
// Segment layouts are positionally stable, so this always aborts the parse.
type FieldCountError struct {
	Tag    string
	Needed int // highest required field position
	Got    int // number of fields including the tag
}

func (e *FieldCountError) Error() string {
	return fmt.Sprintf("%s segment requires field %d but has only %d fields", e.Tag, e.Needed, e.Got)
}

// FieldValidationError means a field violates its length bounds or fixed value.
// It is fatal for required fields; for optional fields the value is dropped.
type FieldValidationError struct {
	Tag      string
	Field    string
	Position int
	Value    string
	Optional bool
	Msg      string
}

func (e *FieldValidationError) Error() string {
	return fmt.Sprintf("invalid %s%02d (%s) value '%s': %s", e.Tag, e.Position, e.Field, e.Value, e.Msg)
}

// OrphanSubSegmentError is reported when a member-level segment arrives with no open INS record.
type OrphanSubSegmentError struct {
	Tag   string
	Index int
}

func (e *OrphanSubSegmentError) Error() string {
	return fmt.Sprintf("%s segment at index %d has no open INS record", e.Tag, e.Index)
}

// SegmentError locates a fatal parse failure in the segment stream.
type SegmentError struct {
	Index   int
	Tag     string
	Segment string
	Err     error
}

func (e *SegmentError) Error() string {
	return fmt.Sprintf("segment %d (%s) '%s': %s", e.Index, e.Tag, e.Segment, e.Err)
}

func (e *SegmentError) Unwrap() error {
	return e.Err
}

// FileNotFoundError is returned by file handlers when the payload does not exist.
type FileNotFoundError struct {
	Path string
	Err  error
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("file not found: %s: %s", e.Path, e.Err)
}

func (e *FileNotFoundError) Unwrap() error {
	return e.Err
}

// FileReadError is returned by file handlers when the payload exists but cannot be read.
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("failed to read file %s: %s", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error {
	return e.Err
}

type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported export format '%s'", e.Format)
}
