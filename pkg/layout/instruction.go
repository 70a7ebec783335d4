package layout

import (
	"fmt"

	"github.com/matzehuels/panes/pkg/geom"
)

// Policy specifies how a child's extent along the primary axis is computed.
type Policy uint8

const (
	PolicyFixed      Policy = iota // Static extent in logical units
	PolicyPercentage               // Percentage (0-100 scale) of the residual extent
	PolicyEqual                    // Equal share of what percentages leave over
	PolicyAutomatic                // Measured from the child's content
)

// String returns the policy name used in documents and logs.
func (p Policy) String() string {
	switch p {
	case PolicyFixed:
		return "fixed"
	case PolicyPercentage:
		return "percent"
	case PolicyEqual:
		return "equal"
	case PolicyAutomatic:
		return "auto"
	default:
		return fmt.Sprintf("policy(%d)", uint8(p))
	}
}

// Instruction describes how one child is sized within its container.
//
// Instructions are values: a container resolves a fresh copy each pass and
// may overwrite Value on its copy (automatic sizing caches its measurement
// there between the two partition passes).
type Instruction struct {
	Policy Policy
	Value  float64
	Insets geom.Insets

	// Reference, when set on an automatic instruction inside a Scroll, is
	// measured in place of the child itself. Used to size a wrapper by its
	// inner content.
	Reference Element
}

// Fixed returns an instruction with a static extent.
func Fixed(v float64) Instruction {
	return Instruction{Policy: PolicyFixed, Value: v}
}

// Percent returns an instruction taking p percent (0-100 scale).
func Percent(p float64) Instruction {
	return Instruction{Policy: PolicyPercentage, Value: p}
}

// Equal returns an instruction sharing leftover space equally with its
// other Equal siblings.
func Equal() Instruction {
	return Instruction{Policy: PolicyEqual}
}

// Auto returns an instruction measured from the child's content.
func Auto() Instruction {
	return Instruction{Policy: PolicyAutomatic}
}

// WithInsets returns a copy of i with the given insets.
func (i Instruction) WithInsets(e geom.Insets) Instruction {
	i.Insets = e
	return i
}

// SizedBy returns a copy of i measured through ref instead of the child.
func (i Instruction) SizedBy(ref Element) Instruction {
	i.Reference = ref
	return i
}

// Resolve makes a static Instruction usable as a [Source].
func (i Instruction) Resolve(geom.Rect) Instruction { return i }

// String formats the instruction as it appears in documents, e.g. "fixed:40".
func (i Instruction) String() string {
	switch i.Policy {
	case PolicyEqual, PolicyAutomatic:
		return i.Policy.String()
	default:
		return fmt.Sprintf("%s:%g", i.Policy, i.Value)
	}
}

// Source yields the instruction for one child given the container's current
// bounds. It is either static (an [Instruction]) or [Computed].
type Source interface {
	Resolve(bounds geom.Rect) Instruction
}

// Computed is a Source evaluated against the container bounds on every pass.
type Computed func(bounds geom.Rect) Instruction

// Resolve calls f.
func (f Computed) Resolve(bounds geom.Rect) Instruction { return f(bounds) }
