package get_service_detail

import "github.com/m04kA/SMC-DroneBookingService/internal/domain"

// Виды описания услуги
const (
	KindConfigurable   = "configurable"
	KindFixedInclusion = "fixed_inclusion"
	KindNone           = "none"
)

// ServiceDetailResponse HTTP response model.
// Для незарегистрированной услуги Kind = "none" и остальные поля пустые.
type ServiceDetailResponse struct {
	ServiceType   string          `json:"serviceType"`
	Kind          string          `json:"kind"`
	Description   string          `json:"description,omitempty"`
	Groups        []GroupResponse `json:"groups,omitempty"`
	IncludedItems []string        `json:"includedItems,omitempty"`
}

// GroupResponse группа опций
type GroupResponse struct {
	Key        string            `json:"key"`
	Label      string            `json:"label"`
	Mode       string            `json:"mode"`
	Choices    []string          `json:"choices"`
	Default    []string          `json:"default"`
	Info       string            `json:"info,omitempty"`
	ChoiceInfo map[string]string `json:"choiceInfo,omitempty"`
}

// FromDomainDetail конвертирует описание услуги в DTO
func FromDomainDetail(serviceType domain.ServiceType, detail domain.ServiceDetail) *ServiceDetailResponse {
	resp := &ServiceDetailResponse{ServiceType: string(serviceType), Kind: KindNone}

	switch d := detail.(type) {
	case domain.ConfigurableDetail:
		resp.Kind = KindConfigurable
		resp.Description = d.Text
		resp.Groups = make([]GroupResponse, len(d.Groups))
		for i, g := range d.Groups {
			group := GroupResponse{
				Key:     g.Key,
				Label:   g.Label,
				Mode:    string(g.Mode),
				Choices: append([]string(nil), g.Choices...),
				Default: g.DefaultValue().Values(),
				Info:    g.Info.Text,
			}
			if len(g.Info.PerChoice) > 0 {
				group.ChoiceInfo = make(map[string]string, len(g.Info.PerChoice))
				for choice, text := range g.Info.PerChoice {
					group.ChoiceInfo[choice] = text
				}
			}
			resp.Groups[i] = group
		}
	case domain.FixedInclusionDetail:
		resp.Kind = KindFixedInclusion
		resp.Description = d.Text
		resp.IncludedItems = append([]string(nil), d.IncludedItems...)
	}

	return resp
}
