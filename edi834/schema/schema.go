package schema

import (
	"fmt"
	"unicode/utf8"

	ers "github.com/CMSgov/edi834-app/edi834/errors"
	"github.com/CMSgov/edi834-app/edi834/segment"
)

// A Field describes one positional element of a segment and how it is stored on T.
type Field[T any] struct {
	Position int
	Name     string
	Required bool
	Min, Max int
	// Fixed, when set, is the only accepted value.
	Fixed string

	set func(*T, string)
}

// Schema is the fixed field layout for one segment tag.
// Parse fills an empty T one field at a time, so trailing optional fields are
// accepted as far as the segment is wide and never invalidate earlier fields.
type Schema[T any] struct {
	Tag    segment.Tag
	Fields []Field[T]
}

func required[T any](pos int, name string, minLen, maxLen int, set func(*T, string)) Field[T] {
	return Field[T]{Position: pos, Name: name, Required: true, Min: minLen, Max: maxLen, set: set}
}

func optional[T any](pos int, name string, minLen, maxLen int, set func(*T, *string)) Field[T] {
	return Field[T]{Position: pos, Name: name, Min: minLen, Max: maxLen, set: func(t *T, v string) {
		set(t, &v)
	}}
}

func fixed[T any](pos int, name, value string, set func(*T, string)) Field[T] {
	return Field[T]{Position: pos, Name: name, Required: true, Fixed: value,
		Min: len(value), Max: len(value), set: set}
}

// HighestRequired returns the largest position of a required field, or 0 if none.
func (s Schema[T]) HighestRequired() int {
	highest := 0
	for _, f := range s.Fields {
		if f.Required && f.Position > highest {
			highest = f.Position
		}
	}
	return highest
}

// Parse validates fields (index 0 being the tag) and extracts a T.
//
// A segment too short to hold every required field yields a FieldCountError and a
// required field out of bounds yields a FieldValidationError; both are fatal.
// Optional fields that fail validation are left unset and their
// FieldValidationErrors are returned in the second value.
func (s Schema[T]) Parse(fields []string) (*T, []error, error) {
	if needed := s.HighestRequired(); len(fields) <= needed {
		return nil, nil, &ers.FieldCountError{Tag: s.Tag.String(), Needed: needed, Got: len(fields)}
	}

	var (
		result   T
		warnings []error
	)
	for _, f := range s.Fields {
		if f.Position >= len(fields) {
			continue
		}

		value := fields[f.Position]
		if msg := f.check(value); msg != "" {
			err := &ers.FieldValidationError{
				Tag:      s.Tag.String(),
				Field:    f.Name,
				Position: f.Position,
				Value:    value,
				Optional: !f.Required,
				Msg:      msg,
			}
			if f.Required {
				return nil, nil, err
			}
			warnings = append(warnings, err)
			continue
		}
		f.set(&result, value)
	}

	return &result, warnings, nil
}

func (f Field[T]) check(value string) string {
	if f.Fixed != "" {
		if value != f.Fixed {
			return fmt.Sprintf("expected '%s'", f.Fixed)
		}
		return ""
	}

	n := utf8.RuneCountInString(value)
	if n < f.Min {
		return fmt.Sprintf("length %d is below minimum %d", n, f.Min)
	}
	if f.Max > 0 && n > f.Max {
		return fmt.Sprintf("length %d exceeds maximum %d", n, f.Max)
	}
	return ""
}
