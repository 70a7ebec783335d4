package geom

import "testing"

func TestRectInset(t *testing.T) {
	tests := []struct {
		name   string
		rect   Rect
		insets Insets
		want   Rect
	}{
		{
			name:   "uniform",
			rect:   NewRect(0, 0, 100, 50),
			insets: Uniform(10),
			want:   NewRect(10, 10, 80, 30),
		},
		{
			name:   "asymmetric",
			rect:   NewRect(5, 5, 100, 50),
			insets: Insets{Top: 1, Left: 2, Bottom: 3, Right: 4},
			want:   NewRect(7, 6, 94, 46),
		},
		{
			name:   "negative grows",
			rect:   NewRect(10, 10, 10, 10),
			insets: Uniform(-5),
			want:   NewRect(5, 5, 20, 20),
		},
		{
			name:   "not clamped",
			rect:   NewRect(0, 0, 4, 4),
			insets: Uniform(3),
			want:   NewRect(3, 3, -2, -2),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rect.Inset(tt.insets); got != tt.want {
				t.Errorf("Inset() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectIsZero(t *testing.T) {
	if !(Rect{}).IsZero() {
		t.Error("zero rect should report IsZero")
	}
	if NewRect(0, 0, 0, 1).IsZero() {
		t.Error("rect with height should not report IsZero")
	}
	if NewRect(1, 0, 0, 0).IsZero() {
		t.Error("rect with origin should not report IsZero")
	}
}

func TestRectBounds(t *testing.T) {
	r := NewRect(30, 40, 100, 200)
	if got, want := r.Bounds(), NewRect(0, 0, 100, 200); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
}

func TestAxisAccessors(t *testing.T) {
	s := Size{Width: 10, Height: 20}
	if s.Along(Horizontal) != 10 || s.Across(Horizontal) != 20 {
		t.Errorf("horizontal accessors = %v/%v, want 10/20", s.Along(Horizontal), s.Across(Horizontal))
	}
	if s.Along(Vertical) != 20 || s.Across(Vertical) != 10 {
		t.Errorf("vertical accessors = %v/%v, want 20/10", s.Along(Vertical), s.Across(Vertical))
	}

	e := Insets{Top: 1, Left: 2, Bottom: 3, Right: 4}
	if e.Along(Horizontal) != 6 || e.Along(Vertical) != 4 {
		t.Errorf("Along = %v/%v, want 6/4", e.Along(Horizontal), e.Along(Vertical))
	}
	if e.Leading(Vertical) != 1 || e.Trailing(Vertical) != 3 {
		t.Errorf("vertical leading/trailing = %v/%v, want 1/3", e.Leading(Vertical), e.Trailing(Vertical))
	}
	if e.Leading(Horizontal) != 2 || e.Trailing(Horizontal) != 4 {
		t.Errorf("horizontal leading/trailing = %v/%v, want 2/4", e.Leading(Horizontal), e.Trailing(Horizontal))
	}
}

func TestSlot(t *testing.T) {
	if got, want := Slot(Horizontal, 10, 2, 30, 40), NewRect(10, 2, 30, 40); got != want {
		t.Errorf("Slot(horizontal) = %v, want %v", got, want)
	}
	if got, want := Slot(Vertical, 10, 2, 30, 40), NewRect(2, 10, 40, 30); got != want {
		t.Errorf("Slot(vertical) = %v, want %v", got, want)
	}
}

func TestParseDirection(t *testing.T) {
	tests := map[string]struct {
		in      string
		want    Direction
		wantErr bool
	}{
		"horizontal": {in: "horizontal", want: Horizontal},
		"row":        {in: "row", want: Horizontal},
		"vertical":   {in: "vertical", want: Vertical},
		"empty":      {in: "", want: Vertical},
		"unknown":    {in: "diagonal", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseDirection(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDirection(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseDirection(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestHairline(t *testing.T) {
	tests := []struct {
		scale, want float64
	}{
		{scale: 1, want: 1},
		{scale: 2, want: 0.5},
		{scale: 4, want: 0.25},
		{scale: 0, want: 1},
	}
	for _, tt := range tests {
		if got := Hairline(tt.scale); got != tt.want {
			t.Errorf("Hairline(%v) = %v, want %v", tt.scale, got, tt.want)
		}
	}
}

func TestRectIsEmpty(t *testing.T) {
	tests := []struct {
		name string
		r    Rect
		want bool
	}{
		{"zero", Rect{}, true},
		{"no width", NewRect(0, 0, 0, 10), true},
		{"no height", NewRect(5, 5, 10, 0), true},
		{"negative", NewRect(0, 0, -1, 10), true},
		{"area", NewRect(0, 0, 1, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.IsEmpty(); got != tt.want {
				t.Errorf("%v.IsEmpty() = %v, want %v", tt.r, got, tt.want)
			}
		})
	}
}
