package domain

import (
	"encoding/json"
	"strconv"
)

// A Percent is a ratio expressed as a fraction: 0.125 is 12.5%.
//
// The backend encodes percentages pre-scaled by 100,
// so Percent divides on decode and multiplies on encode.
type Percent float64

// Points returns p scaled to percentage points, e.g., 0.125 => 12.5.
func (p Percent) Points() float64 { return float64(p) * 100 }

// String formats p in percentage points with two decimals, e.g., 12.50%.
func (p Percent) String() string {
	return strconv.FormatFloat(p.Points(), 'f', 2, 64) + "%"
}

// MarshalJSON implements json.Marshaler.
func (p Percent) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Points())
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Percent) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}

	var points float64
	if err := json.Unmarshal(b, &points); err != nil {
		return err
	}

	*p = Percent(points / 100)
	return nil
}
