package domain

// ServiceType is an opaque service offering name, e.g. "Visual Inspection"
type ServiceType string

// SelectionMode defines how many choices an option group accepts
type SelectionMode string

const (
	SelectionSingle SelectionMode = "single"
	SelectionMulti  SelectionMode = "multi"
)

// IsValid returns true if the mode is a recognized value
func (m SelectionMode) IsValid() bool {
	return m == SelectionSingle || m == SelectionMulti
}

// OptionInfo is either one description for the whole group or a description per choice
type OptionInfo struct {
	Text      string
	PerChoice map[string]string
}

// For returns the description shown next to a choice
func (i OptionInfo) For(choice string) string {
	if i.PerChoice != nil {
		return i.PerChoice[choice]
	}
	return i.Text
}

// OptionGroup is one configurable axis of a service
type OptionGroup struct {
	Key     string
	Label   string
	Mode    SelectionMode
	Choices []string
	Info    OptionInfo
}

// HasChoice reports whether choice is part of the group
func (g OptionGroup) HasChoice(choice string) bool {
	for _, c := range g.Choices {
		if c == choice {
			return true
		}
	}
	return false
}

// DefaultValue is the value a group holds right after its service is selected:
// the first choice for Single, an empty set for Multi.
func (g OptionGroup) DefaultValue() OptionValue {
	if g.Mode == SelectionSingle && len(g.Choices) > 0 {
		return SingleValue(g.Choices[0])
	}
	return MultiValue()
}

// ServiceDetail is the closed set of service descriptions:
// ConfigurableDetail or FixedInclusionDetail.
type ServiceDetail interface {
	Description() string
	isServiceDetail()
}

// ConfigurableDetail describes a service with option groups
type ConfigurableDetail struct {
	Text   string
	Groups []OptionGroup
}

func (d ConfigurableDetail) Description() string { return d.Text }
func (ConfigurableDetail) isServiceDetail()      {}

// Group looks up a group by key
func (d ConfigurableDetail) Group(key string) (OptionGroup, bool) {
	for _, g := range d.Groups {
		if g.Key == key {
			return g, true
		}
	}
	return OptionGroup{}, false
}

// FixedInclusionDetail describes a service with a fixed list of included items
type FixedInclusionDetail struct {
	Text          string
	IncludedItems []string
}

func (d FixedInclusionDetail) Description() string { return d.Text }
func (FixedInclusionDetail) isServiceDetail()      {}
