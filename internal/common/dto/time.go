package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FlexTime accepts a JSON string ("14:30", "14:30:00", "9") or a bare number (9).
// The raw text is kept, normalization happens in the booking engine.
type FlexTime string

func (t *FlexTime) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*t = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = FlexTime(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("time must be a string or number: %w", err)
	}
	*t = FlexTime(n.String())
	return nil
}

func (t FlexTime) String() string { return string(t) }
