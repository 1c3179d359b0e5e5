// File: internal/taint/state.go

// Package taint models the configuration side of a taint-tracking analysis
// over JVM class files: the closed taint-state domain, per-class summaries
// controlling how casts, return values and method arguments propagate taint,
// and the catalog that maps type descriptors to those summaries.
package taint

import (
	"fmt"
	"sort"
)

// State is one value of the closed taint-state enumeration. The zero value is
// not a member of any domain; use a Domain's sentinel for "unconfigured".
type State string

// The built-in state domain. StateNull is the sentinel meaning no explicit
// state has been configured for a class.
const (
	StateNull    State = "NULL"
	StateUnknown State = "UNKNOWN"
	StateSafe    State = "SAFE"
	StateTainted State = "TAINTED"
	StateInvalid State = "INVALID"
)

// Domain is a closed set of taint states with one distinguished sentinel.
// Summary tokens are resolved exclusively through a Domain, so the class
// summary loader never hard-codes the enumeration's members. A Domain is
// read-only after construction and safe for unsynchronized concurrent use.
type Domain struct {
	sentinel State
	members  map[State]struct{}
}

// NewDomain builds a closed state domain. The sentinel is always a member;
// listing it again in members is harmless.
func NewDomain(sentinel State, members ...State) (*Domain, error) {
	if sentinel == "" {
		return nil, fmt.Errorf("state domain requires a non-empty sentinel")
	}
	d := &Domain{
		sentinel: sentinel,
		members:  make(map[State]struct{}, len(members)+1),
	}
	d.members[sentinel] = struct{}{}
	for _, m := range members {
		if m == "" {
			return nil, fmt.Errorf("state domain rejects the empty state name")
		}
		d.members[m] = struct{}{}
	}
	return d, nil
}

// DefaultDomain returns the five-state domain used by the bundled analysis
// configuration, with NULL as the sentinel.
func DefaultDomain() *Domain {
	d, err := NewDomain(StateNull, StateUnknown, StateSafe, StateTainted, StateInvalid)
	if err != nil {
		// Unreachable: the members above are fixed, non-empty literals.
		panic(err)
	}
	return d
}

// Sentinel returns the domain's "unset/default" member.
func (d *Domain) Sentinel() State { return d.sentinel }

// Contains reports whether s is a member of the domain.
func (d *Domain) Contains(s State) bool {
	_, ok := d.members[s]
	return ok
}

// Resolve maps a raw summary token to a domain member. The second return is
// false when the token names no member.
func (d *Domain) Resolve(name string) (State, bool) {
	s := State(name)
	if d.Contains(s) {
		return s, true
	}
	return "", false
}

// Names returns the member names in sorted order, for error messages and
// tooling output.
func (d *Domain) Names() []string {
	names := make([]string, 0, len(d.members))
	for m := range d.members {
		names = append(names, string(m))
	}
	sort.Strings(names)
	return names
}

// Merge joins two states of the default domain. INVALID absorbs everything,
// TAINTED dominates UNKNOWN and SAFE, UNKNOWN dominates SAFE, and NULL defers
// to the other operand. Used by the propagation engine when control-flow
// paths with different states converge.
func Merge(a, b State) State {
	switch {
	case a == StateInvalid || b == StateInvalid:
		return StateInvalid
	case a == StateNull:
		return b
	case b == StateNull:
		return a
	case a == StateTainted || b == StateTainted:
		return StateTainted
	case a == StateUnknown || b == StateUnknown:
		return StateUnknown
	default:
		return StateSafe
	}
}
