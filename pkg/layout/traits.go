package layout

import (
	"fmt"

	"github.com/matzehuels/panes/pkg/geom"
)

// SizeClass is a coarse classification of available space on one axis.
type SizeClass uint8

const (
	SizeClassUnspecified SizeClass = iota
	SizeClassCompact
	SizeClassRegular
)

// String returns "compact", "regular" or "unspecified".
func (c SizeClass) String() string {
	switch c {
	case SizeClassCompact:
		return "compact"
	case SizeClassRegular:
		return "regular"
	default:
		return "unspecified"
	}
}

// ParseSizeClass parses "compact", "regular" or "unspecified"/"".
func ParseSizeClass(s string) (SizeClass, error) {
	switch s {
	case "compact":
		return SizeClassCompact, nil
	case "regular":
		return SizeClassRegular, nil
	case "unspecified", "":
		return SizeClassUnspecified, nil
	}
	return SizeClassUnspecified, fmt.Errorf("unknown size class %q", s)
}

// CompactThreshold is the width (and height) below which ClassifySize
// reports a compact size class.
const CompactThreshold = 600.0

// Traits is the environment snapshot conditional groups and resolvers are
// evaluated against.
type Traits struct {
	Horizontal SizeClass
	Vertical   SizeClass
}

// ClassifySize derives traits from a viewport size.
func ClassifySize(s geom.Size) Traits {
	t := Traits{Horizontal: SizeClassRegular, Vertical: SizeClassRegular}
	if s.Width < CompactThreshold {
		t.Horizontal = SizeClassCompact
	}
	if s.Height < CompactThreshold {
		t.Vertical = SizeClassCompact
	}
	return t
}

// String formats t as "h=compact,v=regular".
func (t Traits) String() string {
	return fmt.Sprintf("h=%s,v=%s", t.Horizontal, t.Vertical)
}

// TraitSource owns the current Traits and notifies subscribers on change.
// Like the rest of the engine it is single-goroutine.
type TraitSource struct {
	traits Traits
	nextID int
	subs   []subscription
}

type subscription struct {
	id int
	fn func(Traits)
}

// NewTraitSource creates a source holding t.
func NewTraitSource(t Traits) *TraitSource {
	return &TraitSource{traits: t}
}

// Traits returns the current snapshot.
func (s *TraitSource) Traits() Traits { return s.traits }

// Set replaces the snapshot and notifies subscribers in subscription order.
// Setting an equal snapshot does not notify.
func (s *TraitSource) Set(t Traits) {
	if t == s.traits {
		return
	}
	s.traits = t
	for _, sub := range append([]subscription(nil), s.subs...) {
		sub.fn(t)
	}
}

// Subscribe registers fn for change notifications and returns the function
// that cancels the subscription.
func (s *TraitSource) Subscribe(fn func(Traits)) (cancel func()) {
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}
