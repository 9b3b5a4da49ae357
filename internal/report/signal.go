package report

import "fmt"

// Signal is the tri-state investment judgment attached to a section.
//
// SignalNone is an internal fourth state marking a failed annotation. It
// displays and exports as "Hold" (the neutral fallback) but remains
// distinguishable from a genuine Hold judgment via Section.Annotated.
type Signal int

const (
	// SignalUnset means the annotator has not run for this section yet.
	SignalUnset Signal = iota
	SignalBuy
	SignalHold
	SignalSell
	// SignalNone marks a failed annotation; treated as neutral downstream.
	SignalNone
)

// SignalFromScore maps the LLM's integer encoding to a Signal:
// 1 buy, 0 hold, -1 sell. Any other score is rejected so malformed
// responses take the annotation-failure path.
func SignalFromScore(score int) (Signal, error) {
	switch score {
	case 1:
		return SignalBuy, nil
	case 0:
		return SignalHold, nil
	case -1:
		return SignalSell, nil
	default:
		return SignalUnset, fmt.Errorf("signal score %d outside {-1, 0, 1}", score)
	}
}

// Score returns the integer encoding used in exports. SignalNone scores as
// neutral.
func (s Signal) Score() int {
	switch s {
	case SignalBuy:
		return 1
	case SignalSell:
		return -1
	default:
		return 0
	}
}

// String returns the display label. SignalNone renders as Hold.
func (s Signal) String() string {
	switch s {
	case SignalBuy:
		return "Buy"
	case SignalSell:
		return "Sell"
	case SignalHold, SignalNone:
		return "Hold"
	default:
		return ""
	}
}
