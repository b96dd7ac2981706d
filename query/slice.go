package query

import "fmt"

// Slice selects a window of rows by offset and count, the way a
// [start:stop:step] slice of the view would.
type Slice struct {
	Start *int
	Stop  *int
	Step  *int
}

// From skips the first start rows: [start:].
func From(start int) Slice {
	return Slice{Start: &start}
}

// Range keeps rows start up to stop: [start:stop].
func Range(start, stop int) Slice {
	return Slice{Start: &start, Stop: &stop}
}

// Page keeps size rows after the first start: [start::size].
func Page(start, size int) Slice {
	return Slice{Start: &start, Step: &size}
}

// bounds returns the offset and limit the slice sets. A nil result leaves the
// view's value untouched. Step wins over Stop.
func (s Slice) bounds() (offset, limit *int, err error) {
	if s.Start != nil {
		if *s.Start < 0 {
			return nil, nil, fmt.Errorf("%w: negative start %d", ErrInvalidRange, *s.Start)
		}
		offset = s.Start
	}

	if s.Stop != nil {
		start := 0
		if s.Start != nil {
			start = *s.Start
		}
		n := *s.Stop - start
		if n < 0 {
			return nil, nil, fmt.Errorf("%w: stop %d before start %d", ErrInvalidRange, *s.Stop, start)
		}
		limit = &n
	}

	if s.Step != nil {
		if *s.Step < 0 {
			return nil, nil, fmt.Errorf("%w: negative step %d", ErrInvalidRange, *s.Step)
		}
		n := *s.Step
		limit = &n
	}
	return offset, limit, nil
}
