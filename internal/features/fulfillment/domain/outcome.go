package domain

import "shipment-sync/internal/features/orders/domain"

// State is the terminal state of one shipment event.
type State string

const (
	StateTestPing       State = "TEST_PING"
	StateIgnored        State = "IGNORED"
	StateFailed         State = "FAILED"
	StateNoOpenUnits    State = "NO_OPEN_UNITS"
	StateDone           State = "DONE"
	StatePartialFailure State = "PARTIAL_FAILURE"
)

// Outcome is the handled result of processing a shipment event.
// Transport failures are not outcomes; they are returned as errors.
type Outcome struct {
	State   State                      `json:"state"`
	OK      bool                       `json:"ok"`
	Message string                     `json:"message"`
	Writes  []domain.FulfillmentResult `json:"writes,omitempty"`
}

// Succeeded builds a successful outcome.
func Succeeded(state State, msg string) Outcome {
	return Outcome{State: state, OK: true, Message: msg}
}

// Failed builds a handled failure.
func Failed(state State, msg string) Outcome {
	return Outcome{State: state, OK: false, Message: msg}
}
