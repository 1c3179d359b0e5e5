// File: internal/taint/classconfig.go

package taint

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ImmutableMarker flags classes whose instances cannot have their taint state
// changed when passed as method arguments.
const ImmutableMarker = "#IMMUTABLE"

// Compiled once at package init and never modified afterwards, so both
// patterns are safe for concurrent use without synchronization.
var (
	// A JVM type descriptor: optional array markers, then either a primitive
	// marker or L<package>/<Class>; with lowercase package segments and an
	// uppercase-led class name.
	typePattern = regexp.MustCompile(`^(\[)*((L([a-z][a-z0-9]*/)*[A-Z][a-zA-Z0-9$]*;)|B|C|D|F|I|J|S|Z)$`)

	// A class summary: a state name, the immutability marker, or both.
	summaryPattern = regexp.MustCompile(`^([A-Z_]+|#IMMUTABLE|[A-Z_]+#IMMUTABLE)$`)
)

// Errors returned by the class summary loader.
var (
	// ErrSummaryMissing signals that a catalog entry carries no summary field
	// at all, as opposed to an empty one.
	ErrSummaryMissing = errors.New("class summary is missing")

	// ErrEmptySummary signals that the summary was present but blank after
	// trimming.
	ErrEmptySummary = errors.New("empty class summary")
)

// UnknownStateError reports a summary state token outside the loader's
// state domain.
type UnknownStateError struct {
	Name string
}

func (e *UnknownStateError) Error() string {
	return fmt.Sprintf("unknown taint state %q", e.Name)
}

// Accepts reports whether typeDescriptor and summary both match their
// grammars. It is a pure predicate used to pre-flight configuration entries
// before committing to Load; it does not check the state token against any
// domain.
func Accepts(typeDescriptor, summary string) bool {
	return typePattern.MatchString(typeDescriptor) && summaryPattern.MatchString(summary)
}

// ClassConfig is the loaded summary for one class: the default taint state
// its instances carry when returned from a method or produced by a type
// cast, and whether the class is immutable with respect to taint mutation.
//
// A ClassConfig is constructed only by a ClassConfigLoader and is read-only
// afterwards, so a single instance may be shared across goroutines.
type ClassConfig struct {
	taintState State
	sentinel   State
	immutable  bool
}

// TaintState returns the stored state without substitution: the domain
// sentinel when the summary configured no explicit state.
func (c *ClassConfig) TaintState() State { return c.taintState }

// EffectiveTaintState returns the configured state, or defaultState when the
// stored state is the domain sentinel. A summary that explicitly names the
// sentinel behaves the same as one that omits the state entirely.
func (c *ClassConfig) EffectiveTaintState(defaultState State) State {
	if c.taintState == c.sentinel {
		return defaultState
	}
	return c.taintState
}

// Immutable reports whether instances of the class never change taint state
// when passed as method arguments.
func (c *ClassConfig) Immutable() bool { return c.immutable }

// ClassConfigLoader turns raw summary strings into ClassConfig values,
// resolving state tokens against an injected closed domain.
type ClassConfigLoader struct {
	domain *Domain
}

// NewClassConfigLoader binds a loader to a state domain. A nil domain falls
// back to DefaultDomain.
func NewClassConfigLoader(domain *Domain) *ClassConfigLoader {
	if domain == nil {
		domain = DefaultDomain()
	}
	return &ClassConfigLoader{domain: domain}
}

// Domain returns the state domain the loader resolves against.
func (l *ClassConfigLoader) Domain() *Domain { return l.domain }

// Load parses one class summary. The summary is trimmed; it must then consist
// of a state name, the #IMMUTABLE marker, or a state name directly followed
// by the marker. Returns ErrEmptySummary for a blank input and an
// UnknownStateError when the state token is outside the loader's domain.
// Load either returns a fully populated ClassConfig or an error, never both.
func (l *ClassConfigLoader) Load(summary string) (*ClassConfig, error) {
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return nil, ErrEmptySummary
	}

	cfg := &ClassConfig{
		taintState: l.domain.Sentinel(),
		sentinel:   l.domain.Sentinel(),
	}
	if strings.HasSuffix(summary, ImmutableMarker) {
		cfg.immutable = true
		summary = strings.TrimSuffix(summary, ImmutableMarker)
	}

	if summary != "" {
		state, ok := l.domain.Resolve(summary)
		if !ok {
			return nil, &UnknownStateError{Name: summary}
		}
		cfg.taintState = state
	}

	return cfg, nil
}

// LoadEntry is Load for callers holding a (value, ok) pair, e.g. a map lookup
// or a split catalog line. It returns ErrSummaryMissing when the summary
// field was structurally absent rather than empty.
func (l *ClassConfigLoader) LoadEntry(summary string, present bool) (*ClassConfig, error) {
	if !present {
		return nil, ErrSummaryMissing
	}
	return l.Load(summary)
}
