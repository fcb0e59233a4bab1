package eval

import "github.com/gopathic/jsonpath/jvalue"

// A sink is the two-mode result accumulator described in spec.md §4.4: it
// starts as Scalar (holds at most one value) and upgrades in place, at
// most once, to Sequence (appends every value it is given) the first time
// the evaluator enters a multi-valued branch.
type sink struct {
	sequence bool

	hasScalar bool
	scalar    jvalue.Value

	seq []jvalue.Value
}

func newSink() *sink { return &sink{} }

// upgrade switches s to Sequence mode. It is idempotent, and carries
// forward any value already accepted in Scalar mode.
func (s *sink) upgrade() {
	if s.sequence {
		return
	}
	s.sequence = true
	if s.hasScalar {
		s.seq = append(s.seq, s.scalar)
		s.hasScalar = false
	}
}

// accept records a step's result. found reports whether the step actually
// produced a value; accepting "not found" is a no-op in either mode except
// that, per the Scalar sink contract (spec.md §4.4), accepting a second
// scalar value is an evaluation error.
func (s *sink) accept(v jvalue.Value, found bool) error {
	if s.sequence {
		if found {
			s.seq = append(s.seq, v)
		}
		return nil
	}
	if !found {
		return nil
	}
	if s.hasScalar {
		return errorf("multiple results for a single-valued path")
	}
	s.scalar = v
	s.hasScalar = true
	return nil
}

// result reads the accumulated value: the held scalar (or Null if none was
// ever accepted) in Scalar mode, or the accumulated array in Sequence mode.
func (s *sink) result() jvalue.Value {
	if s.sequence {
		return jvalue.NewArray(s.seq...)
	}
	if s.hasScalar {
		return s.scalar
	}
	return jvalue.Null
}
