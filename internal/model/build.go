package model

import "encoding/json"

const (
	// BuildStorageKey holds the serialized twelve-slot build.
	BuildStorageKey = "selectedComponents"
	// CompareStorageKey holds the serialized comparison list.
	CompareStorageKey = "compareProducts"
)

// Record is a raw catalog entry. Its shape depends on the data source and
// the category; readers in the converter package map it to canonical specs.
type Record map[string]any

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch vv := v.(type) {
	case map[string]any:
		return map[string]any(Record(vv).Clone())
	case Record:
		return vv.Clone()
	case []any:
		out := make([]any, len(vv))
		for i := range vv {
			out[i] = cloneValue(vv[i])
		}
		return out
	case []string:
		return append([]string(nil), vv...)
	default:
		return v
	}
}

// Build maps every slot to a record; a nil record is an empty slot.
// All twelve keys are always present.
type Build map[Slot]Record

func NewBuild() Build {
	b := make(Build, len(allSlots))
	for _, s := range allSlots {
		b[s] = nil
	}
	return b
}

func (b Build) Clone() Build {
	out := NewBuild()
	for _, s := range allSlots {
		out[s] = b[s].Clone()
	}
	return out
}

// Empty reports whether no slot is populated.
func (b Build) Empty() bool {
	for _, s := range allSlots {
		if b[s] != nil {
			return false
		}
	}
	return true
}

// MarshalJSON always writes all twelve keys, empty slots as null.
func (b Build) MarshalJSON() ([]byte, error) {
	raw := make(map[string]Record, len(allSlots))
	for _, s := range allSlots {
		raw[string(s)] = b[s]
	}
	return json.Marshal(raw)
}

// UnmarshalJSON keeps the twelve-key invariant: unknown keys are dropped,
// missing keys and non-object values become empty slots.
func (b *Build) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := NewBuild()
	for _, s := range allSlots {
		msg, ok := raw[string(s)]
		if !ok {
			continue
		}
		var rec Record
		if err := json.Unmarshal(msg, &rec); err != nil {
			continue
		}
		out[s] = rec
	}

	*b = out
	return nil
}
