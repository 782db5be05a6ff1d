package model

import (
	"encoding/json"
	"math"
)

// intValue converts a loosely typed integral number within ±MaxID to an int.
// Integral floats such as 3.0 are accepted.
func intValue(v any) (int, bool) {
	var i int64
	switch n := v.(type) {
	case int:
		i = int64(n)
	case int32:
		i = int64(n)
	case int64:
		i = n
	case float64:
		return floatValue(n)
	case json.Number:
		var err error
		if i, err = n.Int64(); err != nil {
			f, err := n.Float64()
			if err != nil {
				return 0, false
			}
			return floatValue(f)
		}
	default:
		return 0, false
	}
	if i > MaxID || i < -MaxID {
		return 0, false
	}
	return int(i), true
}

func floatValue(f float64) (int, bool) {
	if f != math.Trunc(f) || math.Abs(f) > MaxID {
		return 0, false
	}
	return int(f), true
}

// refValue returns a positive id reference, or 0 when v is absent or invalid.
func refValue(v any) int {
	id, ok := intValue(v)
	if !ok || id < 1 {
		return 0
	}
	return id
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

// intList converts a loosely typed list to a slice of positive ids.
// Non-numeric elements are dropped.
func intList(v any) []int {
	out := []int{}
	switch l := v.(type) {
	case []int:
		for _, id := range l {
			if id > 0 {
				out = append(out, id)
			}
		}
	case []any:
		for _, item := range l {
			if id := refValue(item); id > 0 {
				out = append(out, id)
			}
		}
	}
	return out
}

// assignID adopts a valid explicit id from m, or draws the next one from seq.
func assignID(m map[string]any, seq *Sequence) int {
	if seq == nil {
		seq = &Sequence{}
	}
	if id := refValue(m["id"]); id > 0 {
		seq.Observe(id)
		return id
	}
	return seq.Next()
}

// optionalString maps the zero value to nil so absent fields serialize as null.
func optionalString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func optionalRef(id int) any {
	if id == 0 {
		return nil
	}
	return id
}

func containsID(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func removeID(ids []int, id int) ([]int, bool) {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...), true
		}
	}
	return ids, false
}

func cloneIDs(ids []int) []int {
	out := make([]int, len(ids))
	copy(out, ids)
	return out
}
