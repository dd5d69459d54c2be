package assembler

import (
	ers "github.com/CMSgov/edi834-app/edi834/errors"
	"github.com/CMSgov/edi834-app/edi834/models"
	"github.com/CMSgov/edi834-app/edi834/schema"
	"github.com/CMSgov/edi834-app/edi834/segment"
)

// Result is the outcome of a successful assembly.
type Result struct {
	Records []models.MemberRecord
	Notices []Notice
}

// Assembler turns an ordered segment stream into member records in a single pass.
// An Assembler holds no state between calls and may be reused.
type Assembler struct {
	Tokenizer segment.Tokenizer
	// Observer, if set, is notified of each notice as it is emitted.
	Observer Observer
}

func New(observer Observer) *Assembler {
	return &Assembler{Tokenizer: segment.Default, Observer: observer}
}

// AssembleText splits text into segments and assembles them.
func (a *Assembler) AssembleText(text string) (*Result, error) {
	segments, err := a.Tokenizer.SplitSegments(text)
	if err != nil {
		return nil, err
	}
	return a.Assemble(segments)
}

// Assemble builds one record per INS segment, attaching the sub-segments that follow
// it. The first fatal error is returned as a *errors.SegmentError and no records are
// returned with it.
func (a *Assembler) Assemble(segments []string) (*Result, error) {
	if len(segments) == 0 {
		return nil, &ers.EmptyInputError{}
	}

	r := &run{observer: a.Observer}
	for i, raw := range segments {
		fields := a.Tokenizer.SplitFields(raw)
		tag := segment.TagOf(fields)
		r.index, r.tag, r.segment = i, tag, raw

		if err := r.dispatch(fields); err != nil {
			return nil, &ers.SegmentError{Index: i, Tag: tag.String(), Segment: raw, Err: err}
		}
	}
	r.finalize()

	return &Result{Records: r.records, Notices: r.notices}, nil
}

type handler func(r *run, fields []string) error

// handlers holds one entry per member-level tag.

var handlers = map[segment.Tag]handler{
	segment.INS: startRecord,
	segment.REF: repeatable(schema.Reference, func(m *models.MemberRecord, v models.Reference) {
		m.References = append(m.References, v)
	}),
	segment.DTP: repeatable(schema.DateSpan, func(m *models.MemberRecord, v models.DateSpan) {
		m.DateSpans = append(m.DateSpans, v)
	}),
	segment.NM1: singleton(schema.Name, func(m *models.MemberRecord) **models.Name { return &m.Name }),
	segment.PER: singleton(schema.Contact, func(m *models.MemberRecord) **models.Contact { return &m.Contact }),
	segment.N3:  singleton(schema.Address, func(m *models.MemberRecord) **models.AddressLine { return &m.Address }),
	segment.N4:  singleton(schema.Location, func(m *models.MemberRecord) **models.Location { return &m.Location }),
	segment.DMG: singleton(schema.Demographics, func(m *models.MemberRecord) **models.Demographics { return &m.Demographics }),
	segment.HD:  singleton(schema.Coverage, func(m *models.MemberRecord) **models.Coverage { return &m.Coverage }),
}

// run is the state of a single Assemble call.
type run struct {
	observer Observer
	current  *models.MemberRecord
	records  []models.MemberRecord
	notices  []Notice

	index   int
	tag     segment.Tag
	segment string
}

func (r *run) dispatch(fields []string) error {
	if r.tag.IsEnvelope() {
		r.notify(EnvelopeSegment, nil)
		return nil
	}

	if !r.tag.IsMemberLevel() {
		r.notify(UnknownSegment, nil)
		return nil
	}

	if r.tag != segment.INS && r.current == nil {
		r.notify(OrphanSubSegment, &ers.OrphanSubSegmentError{Tag: r.tag.String(), Index: r.index})
		return nil
	}

	return handlers[r.tag](r, fields)
}

func (r *run) notify(kind Kind, err error) {
	n := Notice{Kind: kind, Index: r.index, Tag: r.tag.String(), Segment: r.segment, Err: err}
	r.notices = append(r.notices, n)
	if r.observer != nil {
		r.observer.Notify(n)
	}
}

func (r *run) warn(warnings []error) {
	for _, w := range warnings {
		r.notify(InvalidOptionalField, w)
	}
}

// finalize moves the open record, if any, to the output.
func (r *run) finalize() {
	if r.current == nil {
		return
	}
	r.records = append(r.records, *r.current)
	r.current = nil
}

func startRecord(r *run, fields []string) error {
	member, warnings, err := schema.Member.Parse(fields)
	if err != nil {
		return err
	}
	r.finalize()
	r.warn(warnings)
	r.current = member
	return nil
}

func repeatable[T any](s schema.Schema[T], add func(*models.MemberRecord, T)) handler {
	return func(r *run, fields []string) error {
		v, warnings, err := s.Parse(fields)
		if err != nil {
			return err
		}
		r.warn(warnings)
		add(r.current, *v)
		return nil
	}
}

func singleton[T any](s schema.Schema[T], slot func(*models.MemberRecord) **T) handler {
	return func(r *run, fields []string) error {
		v, warnings, err := s.Parse(fields)
		if err != nil {
			return err
		}
		r.warn(warnings)

		p := slot(r.current)
		if *p != nil {
			r.notify(DuplicateSubSegment, nil)
		}
		*p = v
		return nil
	}
}
