package gate

import (
	"encoding/json"
	"fmt"
)

// GateResult represents the possible outcomes of a single gate decision
type GateResult string

const (
	Granted  GateResult = "Granted"  // Access is granted
	Denied   GateResult = "Denied"   // Access is denied
	DontCare GateResult = "DontCare" // The gate has no opinion; the chain defers to other units
)

// UnmarshalJSON parses the JSON-encoded data and validates it as one of the defined GateResult values.
func (r *GateResult) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	switch GateResult(s) {
	case Granted, Denied, DontCare:
		*r = GateResult(s)
		return nil
	default:
		return fmt.Errorf("invalid gate result value: %q, must be one of: Granted, Denied, DontCare", s)
	}
}
