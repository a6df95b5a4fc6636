package guidance

import "testing"

func TestDecisionString(t *testing.T) {
	tests := []struct {
		d    Decision
		want string
	}{
		{Stop, "STOP"},
		{StepLeft, "STEP_LEFT"},
		{StepRight, "STEP_RIGHT"},
		{GoStraight, "GO_STRAIGHT"},
	}
	for _, tt := range tests {
		if got := tt.d.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestIsLateral(t *testing.T) {
	if !IsLateral(StepLeft) || !IsLateral(StepRight) {
		t.Error("IsLateral(step) = false, want true")
	}
	if IsLateral(Stop) || IsLateral(GoStraight) {
		t.Error("IsLateral(non-step) = true, want false")
	}
}

func TestIsUrgent(t *testing.T) {
	if !IsUrgent(Stop) {
		t.Error("IsUrgent(STOP) = false, want true")
	}
	if IsUrgent(StepLeft) || IsUrgent(GoStraight) {
		t.Error("IsUrgent(non-stop) = true, want false")
	}
}

func TestText(t *testing.T) {
	tests := []struct {
		d     Decision
		label string
		want  string
	}{
		{Stop, "person", "Stop. person ahead"},
		{Stop, "", "Stop"},
		{StepLeft, "person", "Step left"},
		{StepRight, "", "Step right"},
		{GoStraight, "chair", "Continue straight"},
	}
	for _, tt := range tests {
		if got := Text(tt.d, tt.label); got != tt.want {
			t.Errorf("Text(%v, %q) = %q, want %q", tt.d, tt.label, got, tt.want)
		}
	}
}
