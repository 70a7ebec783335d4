package document

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/panes/pkg/errors"
	"github.com/matzehuels/panes/pkg/geom"
	"github.com/matzehuels/panes/pkg/layout"
)

const mailTOML = `
name = "mail"

[root]
id = "root"
kind = "partition"
direction = "horizontal"
compact_direction = "vertical"

[[root.children]]
id = "sidebar"
kind = "leaf"
size = "fixed:200"

[[root.children]]
id = "list"
kind = "scroll"
size = "percent:25"
padding = { top = 5, bottom = 5 }

[[root.children.children]]
id = "m1"
kind = "leaf"
size = "fixed:10"

[[root.children.children]]
id = "m2"
kind = "leaf"
size = "fixed:20"

[[root.children.children]]
id = "m3"
kind = "leaf"
size = "fixed:30"

[[root.children]]
id = "detail"
kind = "conditional"

[[root.children.groups]]
name = "compact"
when = "compact"

[[root.children.groups.children]]
id = "summary"
kind = "leaf"

[[root.children.groups]]
name = "regular"
when = "regular"

[[root.children.groups.children]]
id = "reader"
kind = "leaf"
`

func TestParseTOML(t *testing.T) {
	doc, err := Parse([]byte(mailTOML), FormatTOML)
	require.NoError(t, err)

	assert.Equal(t, "mail", doc.Name)
	assert.Equal(t, KindPartition, doc.Root.Kind)
	require.Len(t, doc.Root.Children, 3)
	assert.Equal(t, "percent:25", doc.Root.Children[1].Size)
	assert.Len(t, doc.Root.Children[1].Children, 3)
	require.Len(t, doc.Root.Children[2].Groups, 2)
	assert.Equal(t, "reader", doc.Root.Children[2].Groups[1].Children[0].ID)
	assert.Equal(t, 5.0, doc.Root.Children[1].Padding.Top)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("[root]\nkind = \"leaf\"\ncolour = \"red\"\n"), FormatTOML)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidDocument))
	assert.Contains(t, err.Error(), "root.colour")

	_, err = Parse([]byte(`{"root": {"kind": "leaf", "colour": "red"}}`), FormatJSON)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidDocument))
}

func TestEncodeRoundTrip(t *testing.T) {
	doc, err := Parse([]byte(mailTOML), FormatTOML)
	require.NoError(t, err)

	for _, format := range []Format{FormatTOML, FormatJSON} {
		var buf strings.Builder
		require.NoError(t, Encode(&buf, doc, format))
		again, err := Parse([]byte(buf.String()), format)
		require.NoError(t, err, "format %s", format)
		assert.Equal(t, doc, again, "format %s", format)
	}
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatOf("layouts/mail.JSON"))
	assert.Equal(t, FormatTOML, FormatOf("mail.toml"))
	assert.Equal(t, FormatTOML, FormatOf("mail"))

	_, err := ParseFormat("yaml")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in   string
		want layout.Instruction
	}{
		{"fixed:40", layout.Fixed(40)},
		{"40", layout.Fixed(40)},
		{"percent:25", layout.Percent(25)},
		{"12.5%", layout.Percent(12.5)},
		{"150%", layout.Percent(150)},
		{"equal", layout.Equal()},
		{"auto", layout.Auto()},
		{" Auto ", layout.Auto()},
	}
	for _, tt := range tests {
		got, err := ParsePolicy(tt.in)
		if assert.NoError(t, err, tt.in) {
			assert.Equal(t, tt.want, got, tt.in)
		}
	}

	for _, bad := range []string{"", "fixed:", "fixed:-1", "grow:2", "percent:nan", "wide"} {
		_, err := ParsePolicy(bad)
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidPolicy), "%q: %v", bad, err)
	}
}

func TestParsePredicate(t *testing.T) {
	compactWide := layout.Traits{Horizontal: layout.SizeClassCompact, Vertical: layout.SizeClassRegular}
	regular := layout.Traits{Horizontal: layout.SizeClassRegular, Vertical: layout.SizeClassRegular}

	tests := []struct {
		cond string
		t    layout.Traits
		want bool
	}{
		{"any", compactWide, true},
		{"compact", compactWide, true},
		{"compact", regular, false},
		{"regular", regular, true},
		{"v=regular", compactWide, true},
		{"horizontal=compact & vertical=regular", compactWide, true},
		{"horizontal=compact & vertical=compact", compactWide, false},
	}
	for _, tt := range tests {
		pred, err := ParsePredicate(tt.cond)
		require.NoError(t, err, tt.cond)
		assert.Equal(t, tt.want, pred(tt.t), "%s on %v", tt.cond, tt.t)
	}

	for _, bad := range []string{"", "depth=compact", "huge", "compact &"} {
		_, err := ParsePredicate(bad)
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidPredicate), "%q: %v", bad, err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		path string
	}{
		{
			name: "missing kind",
			doc:  Document{Root: Node{}},
			path: "root.kind",
		},
		{
			name: "unknown kind",
			doc:  Document{Root: Node{Kind: "grid"}},
			path: "root.kind",
		},
		{
			name: "bad policy",
			doc:  Document{Root: Node{Kind: KindPartition, Children: []Node{{Kind: KindLeaf, Size: "grow"}}}},
			path: "root.children[0].size",
		},
		{
			name: "duplicate id",
			doc: Document{Root: Node{Kind: KindPartition, Children: []Node{
				{ID: "a", Kind: KindLeaf}, {ID: "a", Kind: KindLeaf},
			}}},
			path: "root.children[1].id",
		},
		{
			name: "leaf with children",
			doc:  Document{Root: Node{Kind: KindLeaf, Children: []Node{{Kind: KindLeaf}}}},
			path: "root.children",
		},
		{
			name: "bad direction",
			doc:  Document{Root: Node{Kind: KindScroll, Direction: "diagonal"}},
			path: "root.direction",
		},
		{
			name: "bad condition",
			doc: Document{Root: Node{Kind: KindConditional, Groups: []Group{
				{Name: "g", When: "depth=1"},
			}}},
			path: "root.groups[0].when",
		},
		{
			name: "unknown ref",
			doc: Document{Root: Node{Kind: KindScroll, Children: []Node{
				{Kind: KindLeaf, Ref: "ghost"},
			}}},
			path: "root.children[0].ref",
		},
		{
			name: "ref outside scroll",
			doc: Document{Root: Node{Kind: KindPartition, Children: []Node{
				{ID: "a", Kind: KindLeaf, Size: "auto", Ref: "b"}, {ID: "b", Kind: KindLeaf},
			}}},
			path: "root.children[0].ref",
		},
		{
			name: "ref on fixed child",
			doc: Document{Root: Node{Kind: KindScroll, Children: []Node{
				{ID: "a", Kind: KindLeaf, Size: "fixed:3", Ref: "b"}, {ID: "b", Kind: KindLeaf},
			}}},
			path: "root.children[0].ref",
		},
		{
			name: "ref to ancestor",
			doc: Document{Root: Node{ID: "top", Kind: KindScroll, Children: []Node{
				{Kind: KindLeaf, Ref: "top"},
			}}},
			path: "root.children[0].ref",
		},
		{
			name: "compact direction on scroll",
			doc:  Document{Root: Node{Kind: KindScroll, CompactDirection: "vertical"}},
			path: "root.compact_direction",
		},
		{
			name: "negative scale",
			doc:  Document{Scale: -1, Root: Node{Kind: KindLeaf}},
			path: "scale",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.doc)
			require.Error(t, err)

			var v *errors.ValidationError
			require.ErrorAs(t, err, &v)
			paths := make([]string, len(v.Fields))
			for i, f := range v.Fields {
				paths[i] = f.Path
			}
			assert.Contains(t, paths, tt.path)
			assert.Equal(t, errors.ErrCodeInvalidDocument, errors.GetCode(err))
		})
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	doc := Document{Root: Node{Kind: KindPartition, Children: []Node{
		{Kind: "box"},
		{Kind: KindLeaf, Size: "fixed:-2"},
	}}}
	err := Validate(&doc)

	var v *errors.ValidationError
	require.ErrorAs(t, err, &v)
	assert.Len(t, v.Fields, 2)
}

func TestBuildAndLayout(t *testing.T) {
	doc, err := Parse([]byte(mailTOML), FormatTOML)
	require.NoError(t, err)
	tree, err := Build(doc)
	require.NoError(t, err)
	assert.Equal(t, 9, tree.Len())

	require.NoError(t, tree.Layout(geom.Size{Width: 1000, Height: 700}, layout.ClassifySize(geom.Size{Width: 1000, Height: 700})))
	res := Snapshot(tree)

	sidebar, ok := res.Find("sidebar")
	require.True(t, ok)
	assert.Equal(t, geom.NewRect(0, 0, 200, 700), sidebar.Rect())
	assert.Equal(t, "fixed:200", sidebar.Policy)

	list, _ := res.Find("list")
	assert.Equal(t, geom.NewRect(200, 0, 200, 700), list.Rect())
	assert.Equal(t, 70.0, list.ContentHeight)

	m2, _ := res.Find("m2")
	assert.Equal(t, geom.NewRect(200, 15, 200, 20), m2.Rect())
	assert.Equal(t, "list", m2.Parent)
	assert.Equal(t, 2, m2.Depth)

	detail, _ := res.Find("detail")
	assert.Equal(t, "regular", detail.Group)
	assert.Equal(t, geom.NewRect(400, 0, 600, 700), detail.Rect())

	reader, ok := res.Find("reader")
	require.True(t, ok)
	assert.Equal(t, geom.NewRect(400, 0, 600, 700), reader.Rect())
	_, ok = res.Find("summary")
	assert.False(t, ok, "inactive group must not be exported")
}

func TestBuildCompactDirectionAndTraits(t *testing.T) {
	doc, err := Parse([]byte(mailTOML), FormatTOML)
	require.NoError(t, err)
	tree, err := Build(doc)
	require.NoError(t, err)

	viewport := geom.Size{Width: 400, Height: 1000}
	require.NoError(t, tree.Layout(viewport, layout.ClassifySize(viewport)))
	res := Snapshot(tree)

	sidebar, _ := res.Find("sidebar")
	assert.Equal(t, geom.NewRect(0, 0, 400, 200), sidebar.Rect(), "compact width stacks vertically")

	detail, _ := res.Find("detail")
	assert.Equal(t, "compact", detail.Group)
	_, ok := res.Find("summary")
	assert.True(t, ok)
	assert.Equal(t, "h=compact,v=regular", res.Traits)
}

func TestBuildSizingReference(t *testing.T) {
	doc := &Document{Root: Node{ID: "feed", Kind: KindScroll, Children: []Node{
		{ID: "card", Kind: KindPartition, Ref: "body", Children: []Node{
			{ID: "body", Kind: KindLeaf, Height: 40, Padding: &Insets{Top: 4, Bottom: 6}},
		}},
	}}}
	tree, err := Build(doc)
	require.NoError(t, err)
	require.NoError(t, tree.Layout(geom.Size{Width: 100, Height: 30}, layout.Traits{}))

	card, _ := Snapshot(tree).Find("card")
	assert.Equal(t, 50.0, card.Height)
}

func TestBuildTextLeaf(t *testing.T) {
	doc := &Document{Advance: 1, LineHeight: 2, Root: Node{Kind: KindScroll, Children: []Node{
		{ID: "text", Kind: KindLeaf, Text: "hello world"},
	}}}
	tree, err := Build(doc)
	require.NoError(t, err)
	require.NoError(t, tree.Layout(geom.Size{Width: 5, Height: 10}, layout.Traits{}))

	text, _ := Snapshot(tree).Find("text")
	assert.Equal(t, 4.0, text.Height)
}

func TestLayoutRejectsEmptyViewport(t *testing.T) {
	tree, err := Build(&Document{Root: Node{Kind: KindLeaf}})
	require.NoError(t, err)
	err = tree.Layout(geom.Size{Width: 0, Height: 10}, layout.Traits{})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidViewport))
}

func TestResultJSON(t *testing.T) {
	res := &Result{Name: "r", Width: 10, Height: 20, Frames: []Frame{{ID: "a", Kind: KindLeaf, Width: 10, Height: 20}}}
	data, err := json.Marshal(res)
	require.NoError(t, err)

	var back Result
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, *res, back)
	assert.NotContains(t, string(data), "content_height")
}

const sidebarTOML = `
[root]
id = "window"
kind = "partition"
direction = "horizontal"

[[root.children]]
id = "sidebar"
kind = "conditional"
size = "auto"

[[root.children.groups]]
name = "full"
when = "regular"

[[root.children.groups.children]]
id = "folders"
kind = "leaf"
width = 220

[[root.children.groups]]
name = "rail"
when = "compact"

[[root.children.groups.children]]
id = "icons"
kind = "leaf"
width = 64

[[root.children]]
id = "body"
kind = "leaf"
`

func TestLayoutTraitChangeAtSameViewport(t *testing.T) {
	doc, err := Parse([]byte(sidebarTOML), FormatTOML)
	require.NoError(t, err)

	viewport := geom.Size{Width: 1024, Height: 768}
	regular := layout.Traits{Horizontal: layout.SizeClassRegular, Vertical: layout.SizeClassRegular}
	compact := layout.Traits{Horizontal: layout.SizeClassCompact, Vertical: layout.SizeClassRegular}

	tree, err := Build(doc)
	require.NoError(t, err)
	require.NoError(t, tree.Layout(viewport, regular))
	sidebar, _ := Snapshot(tree).Find("sidebar")
	assert.Equal(t, 220.0, sidebar.Width)

	require.NoError(t, tree.Layout(viewport, compact))
	switched := Snapshot(tree)

	fresh, err := Build(doc)
	require.NoError(t, err)
	require.NoError(t, fresh.Layout(viewport, compact))
	want := Snapshot(fresh)

	assert.Equal(t, want.Frames, switched.Frames)
	sidebar, _ = switched.Find("sidebar")
	assert.Equal(t, geom.NewRect(0, 0, 64, 768), sidebar.Rect())
	body, _ := switched.Find("body")
	assert.Equal(t, geom.NewRect(64, 0, 960, 768), body.Rect())

	require.NoError(t, tree.Layout(viewport, regular))
	sidebar, _ = Snapshot(tree).Find("sidebar")
	assert.Equal(t, 220.0, sidebar.Width, "switching back restores the wide group")
}
