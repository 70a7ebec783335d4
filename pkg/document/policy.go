package document

import (
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/panes/pkg/errors"
	"github.com/matzehuels/panes/pkg/layout"
)

// ParsePolicy parses a size policy: "fixed:N" or a bare number, "percent:N"
// or "N%", "equal" or "auto". Negative values are rejected; percentages
// above 100 are accepted.
func ParsePolicy(s string) (layout.Instruction, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "equal":
		return layout.Equal(), nil
	case "auto", "automatic":
		return layout.Auto(), nil
	case "":
		return layout.Instruction{}, errors.New(errors.ErrCodeInvalidPolicy, "empty policy")
	}

	kind, arg, ok := strings.Cut(s, ":")
	if !ok {
		if pct, found := strings.CutSuffix(s, "%"); found {
			kind, arg = "percent", pct
		} else {
			kind, arg = "fixed", s
		}
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
	if err != nil {
		return layout.Instruction{}, errors.Wrap(errors.ErrCodeInvalidPolicy, err, "policy %q: bad value", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return layout.Instruction{}, errors.New(errors.ErrCodeInvalidPolicy, "policy %q: value must be finite", s)
	}
	if v < 0 {
		return layout.Instruction{}, errors.New(errors.ErrCodeInvalidPolicy, "policy %q: negative value", s)
	}

	switch kind {
	case "fixed":
		return layout.Fixed(v), nil
	case "percent", "pct":
		return layout.Percent(v), nil
	}
	return layout.Instruction{}, errors.New(errors.ErrCodeInvalidPolicy, "unknown policy %q", kind)
}

// ParsePredicate parses a group condition into a predicate. A condition is
// one or more terms joined by "&":
//
//	any | always              always true
//	compact | regular         horizontal size class
//	horizontal=<class>        also h=<class>
//	vertical=<class>          also v=<class>
//
// where <class> is compact, regular or unspecified.
func ParsePredicate(s string) (layout.Predicate, error) {
	var terms []layout.Predicate
	for _, raw := range strings.Split(s, "&") {
		term, err := parseTerm(strings.TrimSpace(strings.ToLower(raw)))
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidPredicate, "condition %q: %s", s, errors.UserMessage(err))
		}
		if term != nil {
			terms = append(terms, term)
		}
	}
	return func(t layout.Traits) bool {
		for _, term := range terms {
			if !term(t) {
				return false
			}
		}
		return true
	}, nil
}

func parseTerm(s string) (layout.Predicate, error) {
	switch s {
	case "any", "always":
		return nil, nil
	case "":
		return nil, errors.New(errors.ErrCodeInvalidPredicate, "empty term")
	}

	axis, value, ok := strings.Cut(s, "=")
	if !ok {
		axis, value = "horizontal", s
	}
	class, err := layout.ParseSizeClass(strings.TrimSpace(value))
	if err != nil {
		return nil, err
	}

	switch strings.TrimSpace(axis) {
	case "horizontal", "h", "width":
		return func(t layout.Traits) bool { return t.Horizontal == class }, nil
	case "vertical", "v", "height":
		return func(t layout.Traits) bool { return t.Vertical == class }, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidPredicate, "unknown axis %q", axis)
}
