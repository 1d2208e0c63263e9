package domain

import (
	"encoding/json"
	"errors"
	"sort"
)

// ErrInvalidOptionValue is returned when a stored option value cannot be decoded
var ErrInvalidOptionValue = errors.New("domain: invalid option value")

// OptionValue is the stored value of one option group:
// exactly one string in Single mode, a set of strings in Multi mode.
type OptionValue struct {
	Mode   SelectionMode
	Single string
	Multi  map[string]struct{}
}

// SingleValue builds a Single-mode value
func SingleValue(v string) OptionValue {
	return OptionValue{Mode: SelectionSingle, Single: v}
}

// MultiValue builds a Multi-mode value; duplicates collapse
func MultiValue(values ...string) OptionValue {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return OptionValue{Mode: SelectionMulti, Multi: set}
}

// Contains reports whether v is selected
func (o OptionValue) Contains(v string) bool {
	if o.Mode == SelectionSingle {
		return o.Single == v
	}
	_, ok := o.Multi[v]
	return ok
}

// Toggle flips membership of v in a Multi value. Single values are returned unchanged.
func (o OptionValue) Toggle(v string) OptionValue {
	if o.Mode != SelectionMulti {
		return o
	}
	next := o.Clone()
	if _, ok := next.Multi[v]; ok {
		delete(next.Multi, v)
	} else {
		next.Multi[v] = struct{}{}
	}
	return next
}

// IsEmpty is true for an unset Single value or an empty Multi set
func (o OptionValue) IsEmpty() bool {
	if o.Mode == SelectionSingle {
		return o.Single == ""
	}
	return len(o.Multi) == 0
}

// Values returns the selection as a sorted slice
func (o OptionValue) Values() []string {
	if o.Mode == SelectionSingle {
		if o.Single == "" {
			return []string{}
		}
		return []string{o.Single}
	}
	out := make([]string, 0, len(o.Multi))
	for v := range o.Multi {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Clone returns a deep copy
func (o OptionValue) Clone() OptionValue {
	if o.Mode != SelectionMulti {
		return o
	}
	set := make(map[string]struct{}, len(o.Multi))
	for v := range o.Multi {
		set[v] = struct{}{}
	}
	return OptionValue{Mode: SelectionMulti, Multi: set}
}

// MarshalJSON encodes Single as a string and Multi as a sorted array
func (o OptionValue) MarshalJSON() ([]byte, error) {
	if o.Mode == SelectionSingle {
		return json.Marshal(o.Single)
	}
	return json.Marshal(o.Values())
}

// UnmarshalJSON accepts a string (Single) or an array (Multi)
func (o *OptionValue) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*o = SingleValue(single)
		return nil
	}

	var multi []string
	if err := json.Unmarshal(data, &multi); err != nil {
		return ErrInvalidOptionValue
	}
	*o = MultiValue(multi...)
	return nil
}

// ServiceConfiguration maps each selected service to its option values by group key
type ServiceConfiguration map[ServiceType]map[string]OptionValue

// Clone returns a deep copy
func (c ServiceConfiguration) Clone() ServiceConfiguration {
	out := make(ServiceConfiguration, len(c))
	for st, groups := range c {
		copied := make(map[string]OptionValue, len(groups))
		for key, v := range groups {
			copied[key] = v.Clone()
		}
		out[st] = copied
	}
	return out
}
