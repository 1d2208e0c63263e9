package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DroneBookingService/internal/domain"
)

func TestDefault_ServicesForEveryCategory(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	require.NotEmpty(t, c.Categories())

	for _, category := range c.Categories() {
		services, err := c.ServicesFor(category)
		require.NoError(t, err, category)
		assert.NotEmpty(t, services, category)

		seen := make(map[domain.ServiceType]struct{})
		for _, st := range services {
			_, dup := seen[st]
			assert.False(t, dup, "%s lists %s twice", category, st)
			seen[st] = struct{}{}

			assert.True(t, c.IsRegistered(st), "%s lists unregistered %s", category, st)
		}
	}
}

func TestDefault_VisualInspectionForBuildings(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	services, err := c.ServicesFor("buildings")
	require.NoError(t, err)
	assert.Equal(t, domain.ServiceType("Visual Inspection"), services[0])

	detail, err := c.DetailFor("Visual Inspection")
	require.NoError(t, err)

	configurable, ok := detail.(domain.ConfigurableDetail)
	require.True(t, ok)

	coverage, ok := configurable.Group("coverage")
	require.True(t, ok)
	assert.Equal(t, domain.SelectionMulti, coverage.Mode)
	assert.True(t, coverage.HasChoice("Roofs"))
	assert.NotEmpty(t, coverage.Info.For("Roofs"))

	level, ok := configurable.Group("detail")
	require.True(t, ok)
	assert.Equal(t, domain.SelectionSingle, level.Mode)
	assert.Equal(t, "Overview", level.Choices[0])
	assert.Equal(t, level.Info.For("Forensic"), level.Info.For("Overview"))
}

func TestDefault_FixedInclusion(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	detail, err := c.DetailFor("Aerial Photography")
	require.NoError(t, err)

	fixed, ok := detail.(domain.FixedInclusionDetail)
	require.True(t, ok)
	assert.NotEmpty(t, fixed.IncludedItems)
	assert.NotEmpty(t, fixed.Description())
}

func TestDetailFor_Unknown(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	_, err = c.DetailFor("Underwater Survey")
	assert.ErrorIs(t, err, ErrUnknownServiceType)
}

func TestServicesFor_UnknownCategory(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	_, err = c.ServicesFor("spaceport")
	assert.ErrorIs(t, err, ErrUnknownAssetCategory)
}

func TestServicesFor_ReturnsCopy(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	services, err := c.ServicesFor("buildings")
	require.NoError(t, err)
	services[0] = "tampered"

	again, err := c.ServicesFor("buildings")
	require.NoError(t, err)
	assert.Equal(t, domain.ServiceType("Visual Inspection"), again[0])
}

func TestIsEligible(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.True(t, c.IsEligible("buildings", "Roof Survey"))
	assert.False(t, c.IsEligible("agricultural_land", "Roof Survey"))
	assert.False(t, c.IsEligible("spaceport", "Roof Survey"))
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "no categories",
			data: `
[[services]]
name = "A"
included = ["x"]
`,
		},
		{
			name: "unregistered service",
			data: `
[[categories]]
name = "buildings"
services = ["Missing"]
`,
		},
		{
			name: "duplicate service in category",
			data: `
[[categories]]
name = "buildings"
services = ["A", "A"]

[[services]]
name = "A"
included = ["x"]
`,
		},
		{
			name: "empty category",
			data: `
[[categories]]
name = "buildings"
services = []
`,
		},
		{
			name: "options and included",
			data: `
[[categories]]
name = "buildings"
services = ["A"]

[[services]]
name = "A"
included = ["x"]
  [[services.options]]
  key = "k"
  mode = "single"
  choices = ["a"]
`,
		},
		{
			name: "neither options nor included",
			data: `
[[categories]]
name = "buildings"
services = ["A"]

[[services]]
name = "A"
`,
		},
		{
			name: "unknown mode",
			data: `
[[categories]]
name = "buildings"
services = ["A"]

[[services]]
name = "A"
  [[services.options]]
  key = "k"
  mode = "several"
  choices = ["a"]
`,
		},
		{
			name: "duplicate choice",
			data: `
[[categories]]
name = "buildings"
services = ["A"]

[[services]]
name = "A"
  [[services.options]]
  key = "k"
  mode = "multi"
  choices = ["a", "a"]
`,
		},
		{
			name: "info and choice_info",
			data: `
[[categories]]
name = "buildings"
services = ["A"]

[[services]]
name = "A"
  [[services.options]]
  key = "k"
  mode = "multi"
  choices = ["a"]
  info = "text"
    [services.options.choice_info]
    "a" = "text"
`,
		},
		{
			name: "choice_info for unknown choice",
			data: `
[[categories]]
name = "buildings"
services = ["A"]

[[services]]
name = "A"
  [[services.options]]
  key = "k"
  mode = "multi"
  choices = ["a"]
    [services.options.choice_info]
    "b" = "text"
`,
		},
		{
			name: "broken toml",
			data: `[[categories`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.ErrorIs(t, err, ErrInvalidCatalog)
		})
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	data := `
[[categories]]
name = "pipelines"
services = ["Corridor Survey"]

[[services]]
name = "Corridor Survey"
description = "Linear corridor capture"
included = ["Orthomosaic strip"]
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []domain.AssetCategory{"pipelines"}, c.Categories())
}

func TestLoad_EmptyPathUsesEmbedded(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Contains(t, c.Categories(), domain.AssetCategory("buildings"))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, ErrInvalidCatalog)
}
