package models

import "testing"

func TestAssignmentStatusMetadata(t *testing.T) {
	for _, status := range AllAssignmentStatuses {
		if !status.Valid() {
			t.Errorf("status %q should be valid", status)
		}
		if status.Label() == "Unknown" {
			t.Errorf("status %q has no label", status)
		}
	}
	if AssignmentStatus("stalled").Valid() {
		t.Error("unknown assignment status must not be valid")
	}
}

func TestEvaluationEditability(t *testing.T) {
	draft := Evaluation{Status: EvaluationDraft}
	if !draft.CanBeEdited() {
		t.Error("draft evaluations are mutable by their author")
	}

	submitted := Evaluation{Status: EvaluationSubmitted}
	if submitted.CanBeEdited() {
		t.Error("submitted evaluations are immutable")
	}

	if !EvaluationDraft.Valid() || !EvaluationSubmitted.Valid() {
		t.Error("both evaluation statuses are valid")
	}
	if EvaluationStatus("pending").Valid() {
		t.Error("unknown evaluation status must not be valid")
	}
}
