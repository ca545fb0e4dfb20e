package store

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tgienger/taskboard/internal/models"
)

func sample() []models.Task {
	return []models.Task{
		{ID: "1", Title: "a", Tags: []string{"New"}},
		{ID: "2", Title: "b", Progress: 100, Completed: true},
		{ID: "3", Title: "a"},
	}
}

func TestTransformsLeaveInputUntouched(t *testing.T) {
	in := sample()
	want := sample()

	p := 100
	tags := []string{"x"}
	patchTask(in, "1", Patch{Progress: &p, Tags: &tags})
	withoutID(in, "2")
	withoutTitles(in, []string{"a"})
	appendTask(in, models.Task{ID: "4"})

	if diff := cmp.Diff(want, in); diff != "" {
		t.Errorf("input mutated (-want +got):\n%s", diff)
	}
}

func TestWithoutTitles(t *testing.T) {
	out, n := withoutTitles(sample(), []string{"a"})
	if n != 2 {
		t.Fatalf("expected 2 removed, got %d", n)
	}
	if diff := cmp.Diff([]models.Task{sample()[1]}, out); diff != "" {
		t.Errorf("unexpected result (-want +got):\n%s", diff)
	}
}

func TestPatchTaskMissing(t *testing.T) {
	in := sample()
	out, ok := patchTask(in, "nope", Patch{})
	if ok {
		t.Fatal("expected no match")
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("collection changed (-want +got):\n%s", diff)
	}
}

func TestPatchCompletedOff(t *testing.T) {
	done := false
	out, ok := patchTask(sample(), "2", Patch{Completed: &done})
	if !ok {
		t.Fatal("expected match")
	}
	if out[1].Completed || out[1].Progress != 0 {
		t.Errorf("expected progress 0 and not completed, got %+v", out[1])
	}
}
