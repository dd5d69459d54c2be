package assembler

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Kind classifies a non-fatal condition met while assembling.
type Kind string

const (
	InvalidOptionalField Kind = "InvalidOptionalField"
	OrphanSubSegment     Kind = "OrphanSubSegment"
	DuplicateSubSegment  Kind = "DuplicateSubSegment"
	EnvelopeSegment      Kind = "EnvelopeSegment"
	UnknownSegment       Kind = "UnknownSegment"
)

// Informational reports whether the kind describes skipped control data rather than
// a problem with member data.
func (k Kind) Informational() bool {
	return k == EnvelopeSegment || k == UnknownSegment
}

// A Notice records a recovered condition. Err is set for invalid optional fields
// and orphaned sub-segments.
type Notice struct {
	Kind    Kind
	Index   int
	Tag     string
	Segment string
	Err     error
}

func (n Notice) String() string {
	if n.Err != nil {
		return fmt.Sprintf("%s at segment %d (%s): %s", n.Kind, n.Index, n.Tag, n.Err)
	}
	return fmt.Sprintf("%s at segment %d (%s)", n.Kind, n.Index, n.Tag)
}

// Observer receives notices as they are emitted, in segment order.
type Observer interface {
	Notify(n Notice)
}

// NoticeFunc adapts a function to the Observer interface.
type NoticeFunc func(n Notice)

func (f NoticeFunc) Notify(n Notice) {
	f(n)
}

// Collector keeps every notice it is given.
type Collector struct {
	Notices []Notice
}

func (c *Collector) Notify(n Notice) {
	c.Notices = append(c.Notices, n)
}

// Count returns the number of collected notices of the given kind.
func (c *Collector) Count(kind Kind) int {
	return CountKind(c.Notices, kind)
}

// CountKind returns the number of notices of the given kind.
func CountKind(notices []Notice, kind Kind) int {
	count := 0
	for _, n := range notices {
		if n.Kind == kind {
			count++
		}
	}
	return count
}

// LogObserver writes notices to a logger. Skipped control segments are logged at
// debug level, everything else as a warning.
type LogObserver struct {
	Logger logrus.FieldLogger
}

func (o LogObserver) Notify(n Notice) {
	entry := o.Logger.WithFields(logrus.Fields{
		"notice":        n.Kind,
		"segment_index": n.Index,
		"tag":           n.Tag,
	})
	if n.Err != nil {
		entry = entry.WithError(n.Err)
	}

	if n.Kind.Informational() {
		entry.Debugf("Skipped %s segment", n.Tag)
		return
	}
	entry.Warnf("%s: %s", n.Kind, n.Segment)
}
