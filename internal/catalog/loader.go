package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-DroneBookingService/internal/domain"
)

//go:embed catalog.toml
var embeddedCatalog []byte

// fileCatalog повторяет структуру catalog.toml
type fileCatalog struct {
	Categories []fileCategory `toml:"categories"`
	Services   []fileService  `toml:"services"`
}

type fileCategory struct {
	Name     string   `toml:"name"`
	Services []string `toml:"services"`
}

type fileService struct {
	Name        string       `toml:"name"`
	Description string       `toml:"description"`
	Included    []string     `toml:"included"`
	Options     []fileOption `toml:"options"`
}

type fileOption struct {
	Key        string            `toml:"key"`
	Label      string            `toml:"label"`
	Mode       string            `toml:"mode"`
	Choices    []string          `toml:"choices"`
	Info       string            `toml:"info"`
	ChoiceInfo map[string]string `toml:"choice_info"`
}

// Default возвращает каталог, встроенный в бинарник
func Default() (*Catalog, error) {
	return Parse(embeddedCatalog)
}

// Load читает каталог из файла. Пустой путь означает встроенный каталог.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrInvalidCatalog, path, err)
	}
	return Parse(data)
}

// Parse разбирает и валидирует TOML-описание каталога
func Parse(data []byte) (*Catalog, error) {
	var raw fileCatalog
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidCatalog, err)
	}

	// 1. Схемы услуг
	details := make(map[domain.ServiceType]domain.ServiceDetail, len(raw.Services))
	for _, s := range raw.Services {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: service without name", ErrInvalidCatalog)
		}
		st := domain.ServiceType(name)
		if _, dup := details[st]; dup {
			return nil, fmt.Errorf("%w: service %q declared twice", ErrInvalidCatalog, name)
		}

		detail, err := buildDetail(s)
		if err != nil {
			return nil, err
		}
		details[st] = detail
	}

	// 2. Категории и их упорядоченные списки услуг
	if len(raw.Categories) == 0 {
		return nil, fmt.Errorf("%w: no categories", ErrInvalidCatalog)
	}

	categories := make([]domain.AssetCategory, 0, len(raw.Categories))
	byCategory := make(map[domain.AssetCategory][]domain.ServiceType, len(raw.Categories))
	for _, c := range raw.Categories {
		category := domain.AssetCategory(strings.TrimSpace(c.Name))
		if category == "" {
			return nil, fmt.Errorf("%w: category without name", ErrInvalidCatalog)
		}
		if _, dup := byCategory[category]; dup {
			return nil, fmt.Errorf("%w: category %q declared twice", ErrInvalidCatalog, category)
		}
		if len(c.Services) == 0 {
			return nil, fmt.Errorf("%w: category %q has no services", ErrInvalidCatalog, category)
		}

		seen := make(map[domain.ServiceType]struct{}, len(c.Services))
		services := make([]domain.ServiceType, 0, len(c.Services))
		for _, name := range c.Services {
			st := domain.ServiceType(name)
			if _, ok := details[st]; !ok {
				return nil, fmt.Errorf("%w: category %q lists unregistered service %q", ErrInvalidCatalog, category, name)
			}
			if _, dup := seen[st]; dup {
				return nil, fmt.Errorf("%w: category %q lists %q twice", ErrInvalidCatalog, category, name)
			}
			seen[st] = struct{}{}
			services = append(services, st)
		}

		categories = append(categories, category)
		byCategory[category] = services
	}

	return &Catalog{
		categories: categories,
		byCategory: byCategory,
		details:    details,
	}, nil
}

func buildDetail(s fileService) (domain.ServiceDetail, error) {
	switch {
	case len(s.Included) > 0 && len(s.Options) > 0:
		return nil, fmt.Errorf("%w: service %q has both options and included items", ErrInvalidCatalog, s.Name)
	case len(s.Included) > 0:
		items := make([]string, len(s.Included))
		copy(items, s.Included)
		return domain.FixedInclusionDetail{Text: s.Description, IncludedItems: items}, nil
	case len(s.Options) > 0:
		groups := make([]domain.OptionGroup, 0, len(s.Options))
		keys := make(map[string]struct{}, len(s.Options))
		for _, o := range s.Options {
			group, err := buildGroup(s.Name, o)
			if err != nil {
				return nil, err
			}
			if _, dup := keys[group.Key]; dup {
				return nil, fmt.Errorf("%w: service %q has group %q twice", ErrInvalidCatalog, s.Name, group.Key)
			}
			keys[group.Key] = struct{}{}
			groups = append(groups, group)
		}
		return domain.ConfigurableDetail{Text: s.Description, Groups: groups}, nil
	default:
		return nil, fmt.Errorf("%w: service %q has neither options nor included items", ErrInvalidCatalog, s.Name)
	}
}

func buildGroup(service string, o fileOption) (domain.OptionGroup, error) {
	mode := domain.SelectionMode(o.Mode)
	if o.Key == "" {
		return domain.OptionGroup{}, fmt.Errorf("%w: service %q has group without key", ErrInvalidCatalog, service)
	}
	if !mode.IsValid() {
		return domain.OptionGroup{}, fmt.Errorf("%w: group %s/%s: unknown mode %q", ErrInvalidCatalog, service, o.Key, o.Mode)
	}
	if len(o.Choices) == 0 {
		return domain.OptionGroup{}, fmt.Errorf("%w: group %s/%s has no choices", ErrInvalidCatalog, service, o.Key)
	}

	seen := make(map[string]struct{}, len(o.Choices))
	for _, c := range o.Choices {
		if c == "" {
			return domain.OptionGroup{}, fmt.Errorf("%w: group %s/%s has empty choice", ErrInvalidCatalog, service, o.Key)
		}
		if _, dup := seen[c]; dup {
			return domain.OptionGroup{}, fmt.Errorf("%w: group %s/%s lists %q twice", ErrInvalidCatalog, service, o.Key, c)
		}
		seen[c] = struct{}{}
	}

	info := domain.OptionInfo{Text: o.Info}
	if len(o.ChoiceInfo) > 0 {
		if o.Info != "" {
			return domain.OptionGroup{}, fmt.Errorf("%w: group %s/%s has both info and choice_info", ErrInvalidCatalog, service, o.Key)
		}
		perChoice := make(map[string]string, len(o.ChoiceInfo))
		for choice, text := range o.ChoiceInfo {
			if _, ok := seen[choice]; !ok {
				return domain.OptionGroup{}, fmt.Errorf("%w: group %s/%s describes unknown choice %q", ErrInvalidCatalog, service, o.Key, choice)
			}
			perChoice[choice] = text
		}
		info = domain.OptionInfo{PerChoice: perChoice}
	}

	choices := make([]string, len(o.Choices))
	copy(choices, o.Choices)

	return domain.OptionGroup{
		Key:     o.Key,
		Label:   o.Label,
		Mode:    mode,
		Choices: choices,
		Info:    info,
	}, nil
}
