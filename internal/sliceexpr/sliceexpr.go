// Package sliceexpr parses slice notation (start:stop:step) and resolves
// it to explicit row indices.
package sliceexpr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidSlice is wrapped by all parse failures.
var ErrInvalidSlice = errors.New("invalid slice")

// Spec is a parsed slice expression. A bare integer (no colon) sets Single
// and Start; otherwise Start/Stop/Step hold the written components, with
// nil meaning "unbounded in that direction" (or step 1).
type Spec struct {
	Single bool
	Start  *int
	Stop   *int
	Step   *int
}

// Parse converts slice notation into a Spec.
//
// Grammar: [start][:[stop][:[step]]] where each component is an optional
// signed integer. A bare integer selects exactly one row. Step 0 is
// rejected.
func Parse(expr string) (Spec, error) {
	parts := strings.Split(expr, ":")
	if len(parts) > 3 {
		return Spec{}, fmt.Errorf("%w: %q has more than two colons", ErrInvalidSlice, expr)
	}

	vals := make([]*int, len(parts))
	for i, p := range parts {
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return Spec{}, fmt.Errorf("%w: %q is not an integer", ErrInvalidSlice, p)
		}
		vals[i] = &n
	}

	if len(parts) == 1 {
		if vals[0] == nil {
			return Spec{}, fmt.Errorf("%w: empty expression", ErrInvalidSlice)
		}
		return Spec{Single: true, Start: vals[0]}, nil
	}

	spec := Spec{Start: vals[0], Stop: vals[1]}
	if len(parts) == 3 {
		spec.Step = vals[2]
		if spec.Step != nil && *spec.Step == 0 {
			return Spec{}, fmt.Errorf("%w: step cannot be zero", ErrInvalidSlice)
		}
	}
	return spec, nil
}

// Indices resolves the Spec against a sequence of n rows, returning the
// selected indices in traversal order. Negative components count from the
// end; out-of-range bounds clamp rather than fail, so the result may be
// empty.
func (sp Spec) Indices(n int) []int {
	if n <= 0 {
		return nil
	}

	if sp.Single {
		i := *sp.Start
		if i < 0 {
			i += n
		}
		if i < 0 || i >= n {
			return nil
		}
		return []int{i}
	}

	step := 1
	if sp.Step != nil {
		step = *sp.Step
	}

	var start, stop int
	if step > 0 {
		start = resolve(sp.Start, 0, n, 0, n)
		stop = resolve(sp.Stop, n, n, 0, n)
	} else {
		start = resolve(sp.Start, n-1, n, -1, n-1)
		stop = resolve(sp.Stop, -1, n, -1, n-1)
	}

	var out []int
	if step > 0 {
		for i := start; i < stop; i += step {
			out = append(out, i)
		}
	} else {
		for i := start; i > stop; i += step {
			out = append(out, i)
		}
	}
	return out
}

// resolve turns an optional, possibly negative bound into an absolute
// index clamped to [lo, hi].
func resolve(v *int, def, n, lo, hi int) int {
	if v == nil {
		return def
	}
	i := *v
	if i < 0 {
		i += n
	}
	if i < lo {
		return lo
	}
	if i > hi {
		return hi
	}
	return i
}
