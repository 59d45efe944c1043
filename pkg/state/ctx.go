package state

import (
	"encoding/json"
	"fmt"
)

// Ctx is a component's context binding. The wire form is an object with
// exactly one member whose key selects the binding kind; "R" (the only
// kind) binds the component to the region anchored by the named id.
type Ctx struct {
	// Region is the anchor id of the managed region the component
	// renders into.
	Region string
}

// MarshalJSON writes the externally tagged wire form {"R": region}.
func (c Ctx) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{"R": c.Region})
}

// UnmarshalJSON reads the wire form, rejecting unknown binding kinds.
func (c *Ctx) UnmarshalJSON(data []byte) error {
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("state: malformed context binding: %w", err)
	}
	if len(m) != 1 {
		return fmt.Errorf("state: context binding has %d members, want 1", len(m))
	}
	region, ok := m["R"]
	if !ok {
		for k := range m {
			return fmt.Errorf("state: unknown context binding kind %q", k)
		}
	}
	c.Region = region
	return nil
}
