package fields

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/joseph-ayodele/survey-tabulator/constants"
	"github.com/joseph-ayodele/survey-tabulator/internal/common"
)

func writeSpec(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fields.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadPreservesOrder(t *testing.T) {
	path := writeSpec(t, "Employer Name\nJob Title\tSupervisor Name\n  Comments  \n")

	list, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := []string{"Employer Name", "Job Title", "Supervisor Name", "Comments"}
	got := list.Names()
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLoadDropsBlanksAndDuplicates(t *testing.T) {
	path := writeSpec(t, "A\n\n\t\nB\nA\n\t B \t\nC")

	list, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := []string{"A", "B", "C"}
	got := list.Names()
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if !list.Contains("B") {
		t.Error("Contains(B) = false, want true")
	}
	if list.Contains("D") {
		t.Error("Contains(D) = true, want false")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"), nil)
	if !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Load() error = %v, want ErrNotFound", err)
	}
}

func TestLoadEmptySpec(t *testing.T) {
	path := writeSpec(t, " \n\t\n ")
	if _, err := Load(path, nil); err == nil {
		t.Error("Load() error = nil, want error for empty spec")
	}
}

func TestIsRating(t *testing.T) {
	path := writeSpec(t, "Overall Performance Rating\nTeamwork\nEmployer Name\nComments")

	list, err := Load(path, constants.DefaultRatingKeywords)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cases := []struct {
		name string
		want bool
	}{
		{"Overall Performance Rating", true},
		{"Teamwork", true},
		{"Employer Name", false},
		{"Comments", false},
	}
	for _, tc := range cases {
		if got := list.IsRating(tc.name); got != tc.want {
			t.Errorf("IsRating(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestIsRatingCustomKeywords(t *testing.T) {
	list := Parse("Delivery Speed\nEmployer Name", []string{"speed"})

	if !list.IsRating("Delivery Speed") {
		t.Error("IsRating(Delivery Speed) = false, want true with custom keyword")
	}
	if list.IsRating("Employer Name") {
		t.Error("IsRating(Employer Name) = true, want false")
	}
}
