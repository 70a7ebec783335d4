package layout

import (
	"github.com/matzehuels/panes/pkg/geom"
	"github.com/matzehuels/panes/pkg/observability"
)

// partitionItem holds per-child scratch state for one pass.
// It lives on the stack of a single pass and is never stored on the container.
type partitionItem struct {
	el  Element
	ins Instruction
}

// partitionPlan is the outcome of pass 1.
type partitionPlan struct {
	items      []partitionItem
	fixedSum   float64 // Fixed values plus automatic slot extents
	percentSum float64 // Sum of percentage fractions (p/100)
	equalCount int
}

// measurePass is pass 1. It resolves every child's instruction, accumulates
// the fixed sum, the percentage loss and the equal-share count, and measures
// automatic children, caching the slot extent on the item's instruction so
// pass 2 does not measure again.
//
// With commit set, nested partitions sized automatically are laid out at a
// trial rectangle before they are measured.
func (p *Partition) measurePass(bounds geom.Rect, dir geom.Direction, commit bool) partitionPlan {
	plan := partitionPlan{items: make([]partitionItem, 0, len(p.children))}

	for _, c := range p.children {
		ins, err := p.registry.Instruction(c.handle, bounds)
		if err != nil {
			p.debug("child skipped", "handle", c.handle, "err", err)
			continue
		}

		switch ins.Policy {
		case PolicyPercentage:
			plan.percentSum += ins.Value / 100
		case PolicyEqual:
			plan.equalCount++
		case PolicyFixed:
			plan.fixedSum += ins.Value
		case PolicyAutomatic:
			avail := p.available(bounds.Size(), dir, ins)
			if nested, ok := c.el.(*Partition); ok && commit {
				nested.prelayout(geom.Rect{Width: avail.Width, Height: avail.Height})
			}
			m := snapHairline(measure(c.el, avail).Along(dir), p.scale)
			ins.Value = m + ins.Insets.Along(dir) + p.padding.Along(dir)
			plan.fixedSum += ins.Value
		}

		plan.items = append(plan.items, partitionItem{el: c.el, ins: ins})
	}
	return plan
}

// placePass is pass 2. It walks the items in attachment order, advancing a
// running offset along the primary axis. Each slot spans the full cross
// axis and is shrunk by the padding and then by the child's insets.
//
// Percentages take their fraction of the residual extent left after fixed and
// automatic children. Equal children split what the percentages leave over.
// Percentage sums above 100% are not clamped: Equal shares go negative.
func (p *Partition) placePass(bounds geom.Rect, dir geom.Direction, plan partitionPlan) []geom.Rect {
	residual := bounds.Along(dir) - plan.fixedSum
	cross := bounds.Across(dir)

	offset := 0.0
	frames := make([]geom.Rect, len(plan.items))
	for i, item := range plan.items {
		extent := plan.extent(item.ins, residual)

		slot := geom.Slot(dir, offset, 0, extent, cross)
		frames[i] = slot.Inset(p.padding).Inset(item.ins.Insets)
		offset += extent
	}
	return frames
}

// extent returns the primary-axis extent pass 2 assigns to a child with ins.
func (plan partitionPlan) extent(ins Instruction, residual float64) float64 {
	switch ins.Policy {
	case PolicyPercentage:
		return residual * ins.Value / 100
	case PolicyEqual:
		// Only reachable with equalCount > 0.
		return (1 - plan.percentSum) * residual / float64(plan.equalCount)
	default:
		return ins.Value
	}
}

// hasSlot reports whether a child is measured in its pass 2 slot rather
// than in the whole available space. Automatic children are measured before
// slots exist, and shares of an open-ended residual are unbounded.
func hasSlot(ins Instruction, residual float64) bool {
	switch ins.Policy {
	case PolicyFixed:
		return true
	case PolicyPercentage, PolicyEqual:
		return residual < geom.Unbounded/2
	}
	return false
}

// available is the space an automatically sized child may measure into:
// the container's extent minus padding and the child's insets.
func (p *Partition) available(size geom.Size, dir geom.Direction, ins Instruction) geom.Size {
	return geom.SizeOf(dir,
		size.Along(dir)-p.padding.Along(dir)-ins.Insets.Along(dir),
		size.Across(dir)-p.padding.Across(dir)-ins.Insets.Across(dir),
	)
}

// SizeThatFits returns the partition's natural size for the available space
// without moving any child.
//
// Along the primary axis the natural extent is the sum of the fixed and
// automatic slots; percentage and equal children take leftover space and
// contribute nothing. Across it, the natural extent is the widest child's
// measurement plus its insets and the padding, each child measured in the
// slot pass 2 would give it.
func (p *Partition) SizeThatFits(available geom.Size) geom.Size {
	bounds := geom.Rect{Width: available.Width, Height: available.Height}
	dir := p.resolveDirection(bounds)
	plan := p.measurePass(bounds, dir, false)
	residual := available.Along(dir) - plan.fixedSum

	var cross float64
	for _, item := range plan.items {
		avail := p.available(available, dir, item.ins)
		if hasSlot(item.ins, residual) {
			along := max(0, plan.extent(item.ins, residual)-p.padding.Along(dir)-item.ins.Insets.Along(dir))
			avail = geom.SizeOf(dir, along, avail.Across(dir))
		}
		extent := measure(item.el, avail).Across(dir) + item.ins.Insets.Across(dir) + p.padding.Across(dir)
		cross = max(cross, extent)
	}

	size := geom.SizeOf(dir, plan.fixedSum, cross)
	observability.Layout().OnMeasure(p.Kind(), size.Width, size.Height)
	return size
}
