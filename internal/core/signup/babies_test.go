package signup

import "testing"

func TestResizeBabies(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		start     []BabyDraft
		wantLen   int
		wantCount string
	}{
		{
			name:      "grow_from_one_to_three",
			input:     "3",
			start:     []BabyDraft{{Name: "A"}},
			wantLen:   3,
			wantCount: "3",
		},
		{
			name:      "shrink_to_two_drops_trailing",
			input:     "2",
			start:     []BabyDraft{{Name: "A"}, {Name: "B"}, {Name: "C"}},
			wantLen:   2,
			wantCount: "2",
		},
		{
			name:      "non_numeric_is_ignored",
			input:     "abc",
			start:     []BabyDraft{{Name: "A"}, {Name: "B"}},
			wantLen:   2,
			wantCount: "2",
		},
		{
			name:      "empty_resets_to_single_form",
			input:     "",
			start:     []BabyDraft{{Name: "A"}, {Name: "B"}},
			wantLen:   1,
			wantCount: "",
		},
		{
			name:      "zero_resets_to_single_form",
			input:     "0",
			start:     []BabyDraft{{Name: "A"}, {Name: "B"}},
			wantLen:   1,
			wantCount: "",
		},
		{
			name:      "above_cap_is_ignored",
			input:     "21",
			start:     []BabyDraft{{Name: "A"}},
			wantLen:   1,
			wantCount: "1",
		},
		{
			name:      "cap_is_inclusive",
			input:     "20",
			start:     []BabyDraft{{Name: "A"}},
			wantLen:   20,
			wantCount: "20",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, count := ResizeBabies(tt.input, tt.start)
			if len(got) != tt.wantLen {
				t.Errorf("expected %d sub-forms, got %d", tt.wantLen, len(got))
			}
			if count != tt.wantCount {
				t.Errorf("expected count text %q, got %q", tt.wantCount, count)
			}
		})
	}
}

// Growing the list must never lose data already entered in earlier siblings.
func TestResizeBabiesPreservesSiblingData(t *testing.T) {
	babies := []BabyDraft{{Name: "Alice", Weight: "2100"}}

	babies, _ = ResizeBabies("3", babies)
	if babies[0].Name != "Alice" || babies[0].Weight != "2100" {
		t.Fatalf("first sibling lost data after grow: %+v", babies[0])
	}
	babies[1].Name = "Bob"

	babies, _ = ResizeBabies("2", babies)
	if len(babies) != 2 {
		t.Fatalf("expected 2 sub-forms, got %d", len(babies))
	}
	if babies[0].Name != "Alice" || babies[1].Name != "Bob" {
		t.Errorf("siblings lost data after shrink: %+v", babies)
	}

	// N then M: intermediate sizes never matter, only the final count.
	babies, _ = ResizeBabies("5", babies)
	babies, _ = ResizeBabies("4", babies)
	if len(babies) != 4 {
		t.Errorf("expected 4 sub-forms after 5 then 4, got %d", len(babies))
	}
	if babies[0].Name != "Alice" || babies[1].Name != "Bob" {
		t.Errorf("siblings lost data across resizes: %+v", babies)
	}
}
