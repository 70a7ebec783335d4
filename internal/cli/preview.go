package cli

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/panes/pkg/document"
	"github.com/matzehuels/panes/pkg/geom"
	"github.com/matzehuels/panes/pkg/layout"
)

// Terminal cells are mapped to points at this size.
const (
	cellWidth  = 8.0
	cellHeight = 16.0
)

// Lines taken by the title, help and status rows.
const previewChrome = 3

var (
	previewHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
	previewCanvasStyle = lipgloss.NewStyle().Foreground(colorWhite)
	previewStatusStyle = lipgloss.NewStyle().Foreground(colorGray)
)

// previewCommand lays a document out at the terminal size and redraws it on
// every resize.
func (c *CLI) previewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "preview [file]",
		Short: "Preview a layout in the terminal",
		Long: `Preview a layout in the terminal. The document is laid out at the
terminal size (one cell is 8x16 points) and laid out again on every resize.

Keys:
  c        force compact size classes
  r        force regular size classes
  a        derive size classes from the terminal size
  i        invalidate every container and lay out again
  j/k      scroll every scroll container
  q        quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := document.Load(args[0])
			if err != nil {
				return err
			}
			tree, err := document.Build(doc, document.WithLogger(loggerFromContext(cmd.Context())))
			if err != nil {
				return err
			}

			p := tea.NewProgram(newPreviewModel(tree, args[0]), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}
}

// sizeMode selects how the preview picks traits.
type sizeMode int

const (
	sizeAuto sizeMode = iota
	sizeCompact
	sizeRegular
)

func (m sizeMode) String() string {
	switch m {
	case sizeCompact:
		return "compact"
	case sizeRegular:
		return "regular"
	default:
		return "auto"
	}
}

// previewModel is the bubbletea model for the preview command.
type previewModel struct {
	tree   *document.Tree
	path   string
	mode   sizeMode
	cols   int
	rows   int
	res    *document.Result
	err    error
	passes int
}

func newPreviewModel(tree *document.Tree, path string) previewModel {
	return previewModel{tree: tree, path: path}
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "c":
			m.mode = sizeCompact
			m = m.relayout()
		case "r":
			m.mode = sizeRegular
			m = m.relayout()
		case "a":
			m.mode = sizeAuto
			m = m.relayout()
		case "i":
			m.tree.Invalidate()
			m.passes++
			m.res = document.Snapshot(m.tree)
		case "down", "j":
			m = m.scroll(cellHeight)
		case "up", "k":
			m = m.scroll(-cellHeight)
		}
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
		m = m.relayout()
	}
	return m, nil
}

// viewport returns the canvas size in points.
func (m previewModel) viewport() geom.Size {
	rows := max(1, m.rows-previewChrome)
	return geom.Size{Width: float64(m.cols) * cellWidth, Height: float64(rows) * cellHeight}
}

func (m previewModel) traits(viewport geom.Size) layout.Traits {
	switch m.mode {
	case sizeCompact:
		return layout.Traits{Horizontal: layout.SizeClassCompact, Vertical: layout.SizeClassCompact}
	case sizeRegular:
		return layout.Traits{Horizontal: layout.SizeClassRegular, Vertical: layout.SizeClassRegular}
	default:
		return layout.ClassifySize(viewport)
	}
}

func (m previewModel) relayout() previewModel {
	if m.cols <= 0 {
		return m
	}
	viewport := m.viewport()
	if err := m.tree.Layout(viewport, m.traits(viewport)); err != nil {
		m.err = err
		return m
	}
	m.err = nil
	m.passes++
	m.res = document.Snapshot(m.tree)
	return m
}

// scroll moves every scroll container by delta points along its axis.
// Scrolling does not lay anything out.
func (m previewModel) scroll(delta float64) previewModel {
	if m.res == nil {
		return m
	}
	for _, f := range m.res.Frames {
		el, ok := m.tree.Element(f.ID)
		if !ok {
			continue
		}
		s, ok := el.(*layout.Scroll)
		if !ok {
			continue
		}
		off := s.ContentOffset()
		if s.Direction() == geom.Horizontal {
			off.X += delta
		} else {
			off.Y += delta
		}
		s.SetContentOffset(off)
	}
	m.res = document.Snapshot(m.tree)
	return m
}

func (m previewModel) View() string {
	var b strings.Builder

	name := m.tree.Name
	if name == "" {
		name = m.path
	}
	b.WriteString(StyleTitle.Render(name))
	b.WriteString("\n")
	b.WriteString(previewHelpStyle.Render("c compact  r regular  a auto  i invalidate  j/k scroll  q quit"))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(styleIconError.Render(iconError) + " " + m.err.Error())
		return b.String()
	}
	if m.res == nil {
		return b.String()
	}

	rows := max(1, m.rows-previewChrome)
	b.WriteString(previewCanvasStyle.Render(strings.Join(rasterize(m.res, m.cols, rows, cellWidth, cellHeight), "\n")))
	b.WriteString("\n")
	b.WriteString(previewStatusStyle.Render(fmt.Sprintf("%gx%g  %s (%s)  %d frames  %d passes",
		m.res.Width, m.res.Height, m.res.Traits, m.mode, len(m.res.Frames), m.passes)))
	return b.String()
}

// cellRect is an inclusive rectangle of terminal cells.
type cellRect struct {
	c0, r0, c1, r1 int
}

func toCells(r geom.Rect, cellW, cellH float64) cellRect {
	return cellRect{
		c0: int(math.Round(r.X / cellW)),
		r0: int(math.Round(r.Y / cellH)),
		c1: int(math.Round(r.Right()/cellW)) - 1,
		r1: int(math.Round(r.Bottom()/cellH)) - 1,
	}
}

func (a cellRect) intersect(b cellRect) cellRect {
	return cellRect{c0: max(a.c0, b.c0), r0: max(a.r0, b.r0), c1: min(a.c1, b.c1), r1: min(a.r1, b.r1)}
}

func (a cellRect) contains(c, r int) bool {
	return c >= a.c0 && c <= a.c1 && r >= a.r0 && r <= a.r1
}

// rasterize draws the frames of res as ASCII boxes on a cols x rows grid.
// Leaves are labelled with their ID. Hidden subtrees are skipped and the
// children of scroll containers are clipped to the scroll frame.
func rasterize(res *document.Result, cols, rows int, cellW, cellH float64) []string {
	grid := make([][]rune, rows)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", cols))
	}
	screen := cellRect{c1: cols - 1, r1: rows - 1}

	clips := make(map[string]cellRect, len(res.Frames))
	hidden := make(map[string]bool)
	for _, f := range res.Frames {
		if f.Hidden || hidden[f.Parent] {
			hidden[f.ID] = true
			continue
		}
		clip := screen
		if parent, ok := clips[f.Parent]; ok {
			clip = parent
		}
		box := toCells(f.Rect(), cellW, cellH)
		if f.Kind == document.KindScroll {
			clips[f.ID] = clip.intersect(box)
		} else {
			clips[f.ID] = clip
		}
		if box.c1 < box.c0 || box.r1 < box.r0 {
			continue
		}

		put := func(c, r int, ch rune) {
			if clip.contains(c, r) {
				grid[r][c] = ch
			}
		}
		for c := box.c0; c <= box.c1; c++ {
			put(c, box.r0, '-')
			put(c, box.r1, '-')
		}
		for r := box.r0; r <= box.r1; r++ {
			put(box.c0, r, '|')
			put(box.c1, r, '|')
		}
		put(box.c0, box.r0, '+')
		put(box.c1, box.r0, '+')
		put(box.c0, box.r1, '+')
		put(box.c1, box.r1, '+')

		if f.Kind == document.KindLeaf && box.r1-box.r0 >= 2 {
			label := []rune(f.ID)
			if room := box.c1 - box.c0 - 1; len(label) > room {
				label = label[:max(0, room)]
			}
			for i, ch := range label {
				put(box.c0+1+i, box.r0+1, ch)
			}
		}
	}

	lines := make([]string, rows)
	for i, row := range grid {
		lines[i] = string(row)
	}
	return lines
}
