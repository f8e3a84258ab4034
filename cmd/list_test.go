package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dimasma0305/starklings/internal/starklings/exercise"
	"github.com/dimasma0305/starklings/internal/starklings/testutil"
)

func listFixture(t *testing.T) exercise.List {
	t.Helper()
	dir := t.TempDir()
	return exercise.List{
		testutil.WriteExercise(t, dir, "intro1", exercise.ModeCompile, true),
		testutil.WriteExercise(t, dir, "intro2", exercise.ModeCompile, false),
		testutil.WriteExercise(t, dir, "structs1", exercise.ModeTest, true),
		testutil.WriteExercise(t, dir, "traits1", exercise.ModeTest, false),
	}
}

func TestListExercises_Table(t *testing.T) {
	exs := listFixture(t)
	var out bytes.Buffer

	listExercises(&out, exs, listOptions{})

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 6 {
		t.Fatalf("expected header, 4 rows and progress, got %d lines:\n%s", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[0], "Name") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[2], "intro2") || !strings.Contains(lines[2], "Pending") {
		t.Errorf("row for intro2 = %q", lines[2])
	}
	if !strings.Contains(lines[3], "Done") {
		t.Errorf("row for structs1 = %q", lines[3])
	}
	if got, want := lines[5], "Progress: You completed 2 / 4 exercises (50.0 %)."; got != want {
		t.Errorf("progress = %q, want %q", got, want)
	}
}

func TestListExercises_Selection(t *testing.T) {
	exs := listFixture(t)

	tests := []struct {
		name string
		opts listOptions
		want []string
	}{
		{"names", listOptions{names: true}, []string{"intro1", "intro2", "structs1", "traits1"}},
		{"unsolved", listOptions{names: true, unsolved: true}, []string{"intro2", "traits1"}},
		{"solved", listOptions{names: true, solved: true}, []string{"intro1", "structs1"}},
		{"solved and unsolved", listOptions{names: true, solved: true, unsolved: true}, []string{"intro1", "intro2", "structs1", "traits1"}},
		{"filter", listOptions{names: true, filter: "intro"}, []string{"intro1", "intro2"}},
		{"comma filter", listOptions{names: true, filter: "structs, traits"}, []string{"structs1", "traits1"}},
		{"filter and unsolved", listOptions{names: true, filter: "intro", unsolved: true}, []string{"intro2"}},
		{"empty filter entries", listOptions{names: true, filter: ","}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			listExercises(&out, exs, tt.opts)

			lines := strings.Split(strings.TrimSpace(out.String()), "\n")
			got := lines[:len(lines)-1]
			if len(got) == 0 {
				got = nil
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("listed names mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestListExercises_Paths(t *testing.T) {
	exs := listFixture(t)
	var out bytes.Buffer

	listExercises(&out, exs, listOptions{paths: true, unsolved: true})

	want := exs[1].Path + "\n" + exs[3].Path + "\n"
	if !strings.HasPrefix(out.String(), want) {
		t.Errorf("paths output = %q, want prefix %q", out.String(), want)
	}
}

func TestListExercises_Empty(t *testing.T) {
	var out bytes.Buffer
	listExercises(&out, nil, listOptions{names: true})

	if got, want := out.String(), "Progress: You completed 0 / 0 exercises (0.0 %).\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}
