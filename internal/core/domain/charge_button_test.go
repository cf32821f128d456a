package domain

import "testing"

func TestChargeButton_ZeroValueIsHidden(t *testing.T) {
	var b ChargeButton
	if b.State() != ChargeHidden {
		t.Fatalf("expected hidden, got %s", b.State())
	}
}

func TestChargeButton_Apply(t *testing.T) {
	var b ChargeButton

	steps := []struct {
		late        bool
		wantState   ChargeButtonState
		wantChanged bool
	}{
		{late: false, wantState: ChargeHidden, wantChanged: false},
		{late: true, wantState: ChargeShown, wantChanged: true},
		{late: true, wantState: ChargeShown, wantChanged: false},
		{late: false, wantState: ChargeHidden, wantChanged: true},
	}

	for i, s := range steps {
		changed := b.Apply(s.late)
		if changed != s.wantChanged || b.State() != s.wantState {
			t.Fatalf("step %d: got (%s, %v), want (%s, %v)", i, b.State(), changed, s.wantState, s.wantChanged)
		}
	}
}
