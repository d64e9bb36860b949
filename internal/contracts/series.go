package contracts

import (
	"encoding/json"
	"math"
)

// Series is an ordered numeric series that may contain gaps. Gaps are NaN
// in memory and null on the wire, so cached snapshots stay valid JSON.
type Series []float64

// MarshalJSON encodes NaN entries as null
func (s Series) MarshalJSON() ([]byte, error) {
	out := make([]*float64, len(s))
	for i := range s {
		if math.IsNaN(s[i]) {
			continue
		}
		v := s[i]
		out[i] = &v
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes null entries as NaN
func (s *Series) UnmarshalJSON(data []byte) error {
	var in []*float64
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	out := make(Series, len(in))
	for i, v := range in {
		if v == nil {
			out[i] = math.NaN()
			continue
		}
		out[i] = *v
	}
	*s = out
	return nil
}
