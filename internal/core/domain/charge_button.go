package domain

// ChargeButtonState is the visibility of the "Charge Delivery" action.
type ChargeButtonState string

const (
	ChargeHidden ChargeButtonState = "hidden"
	ChargeShown  ChargeButtonState = "shown"
)

// ChargeButton models the conditionally offered charge action. The zero value is hidden.
type ChargeButton struct {
	state ChargeButtonState
}

// State returns the current visibility.
func (b *ChargeButton) State() ChargeButtonState {
	if b.state == "" {
		return ChargeHidden
	}
	return b.state
}

// Apply moves the button to Shown when late is true and to Hidden otherwise.
// It reports whether the state changed.
func (b *ChargeButton) Apply(late bool) bool {
	next := ChargeHidden
	if late {
		next = ChargeShown
	}
	if b.State() == next {
		return false
	}
	b.state = next
	return true
}
