package screen

import (
	"reflect"
	"testing"
)

func intPtr(v int) *int { return &v }

func TestNormalize(t *testing.T) {
	tests := []struct {
		name         string
		entries      []Entry
		wantIDs      []int
		wantProblems int
	}{
		{
			name:    "empty snapshot stays empty",
			entries: nil,
			wantIDs: []int{},
		},
		{
			name: "inactive entries only",
			entries: []Entry{
				{ID: intPtr(3), Active: false},
			},
			wantIDs: []int{},
		},
		{
			name: "map prepended and sorted",
			entries: []Entry{
				{ID: intPtr(9), Active: true},
				{ID: intPtr(4), Active: true},
			},
			wantIDs: []int{0, 4, 9},
		},
		{
			name: "map kept when present",
			entries: []Entry{
				{ID: intPtr(5), Active: true},
				{ID: intPtr(0), Active: true},
			},
			wantIDs: []int{0, 5},
		},
		{
			name: "malformed entries dropped individually",
			entries: []Entry{
				{ID: nil, Active: true},
				{ID: intPtr(-2), Active: true},
				{ID: intPtr(6), Active: true},
				{ID: intPtr(6), Active: true, Name: "duplicate"},
			},
			wantIDs:      []int{0, 6},
			wantProblems: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			screens, problems := Normalize(tt.entries)
			if got := IDs(screens); !reflect.DeepEqual(got, tt.wantIDs) {
				t.Errorf("Normalize() ids = %v, want %v", got, tt.wantIDs)
			}
			if len(problems) != tt.wantProblems {
				t.Errorf("Normalize() problems = %d, want %d", len(problems), tt.wantProblems)
			}
			for _, p := range problems {
				if !IsEntryError(p) {
					t.Errorf("problem %v is not an EntryError", p)
				}
			}
		})
	}
}

func TestNormalize_Names(t *testing.T) {
	screens, _ := Normalize([]Entry{
		{ID: intPtr(2), Active: true},
		{ID: intPtr(3), Active: true, Name: "Pipeline", Code: "P3"},
	})

	if !screens[0].IsMap || screens[0].ID != MapID {
		t.Fatalf("first screen = %+v, want map screen", screens[0])
	}
	if screens[1].DisplayName != "Screen 2" {
		t.Errorf("default name = %q, want %q", screens[1].DisplayName, "Screen 2")
	}
	if screens[1].Code != "M2" {
		t.Errorf("default code = %q, want %q", screens[1].Code, "M2")
	}
	if screens[2].Code != "P3" {
		t.Errorf("code = %q, want %q", screens[2].Code, "P3")
	}
}

func TestIsMapOnly(t *testing.T) {
	if IsMapOnly(nil) {
		t.Error("IsMapOnly(nil) = true, want false")
	}
	if !IsMapOnly([]Screen{MapScreen()}) {
		t.Error("IsMapOnly([map]) = false, want true")
	}
	if IsMapOnly([]Screen{MapScreen(), {ID: 1}}) {
		t.Error("IsMapOnly([map, 1]) = true, want false")
	}
	if HasContent([]Screen{MapScreen()}) {
		t.Error("HasContent([map]) = true, want false")
	}
}

func TestEnsureMap_DoesNotMutate(t *testing.T) {
	in := []Screen{{ID: 1}, {ID: 2}}
	out := EnsureMap(in)

	if len(in) != 2 || in[0].ID != 1 {
		t.Errorf("input modified: %v", in)
	}
	if got := IDs(out); !reflect.DeepEqual(got, []int{0, 1, 2}) {
		t.Errorf("EnsureMap() = %v, want [0 1 2]", got)
	}
}
