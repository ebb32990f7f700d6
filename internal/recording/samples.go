package recording

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/wesleyorama2/coach/pkg/coach"
)

// Samples is a series as stored in JSON: missing markers become null and
// infinities become the strings "+Inf" and "-Inf".
type Samples []float64

// MarshalJSON implements json.Marshaler.
func (s Samples) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, v := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		switch {
		case coach.IsMissing(v):
			buf.WriteString("null")
		case math.IsInf(v, 1):
			buf.WriteString(`"+Inf"`)
		case math.IsInf(v, -1):
			buf.WriteString(`"-Inf"`)
		default:
			buf.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Samples) UnmarshalJSON(b []byte) error {
	var raw []interface{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	out := make(Samples, len(raw))
	for i, item := range raw {
		switch v := item.(type) {
		case nil:
			out[i] = coach.Missing()
		case float64:
			out[i] = v
		case string:
			f, err := strconv.ParseFloat(v, 64)
			if err != nil || !math.IsInf(f, 0) {
				return fmt.Errorf("sample %d: unexpected string %q", i, v)
			}
			out[i] = f
		default:
			return fmt.Errorf("sample %d: unexpected %T", i, item)
		}
	}

	*s = out
	return nil
}
