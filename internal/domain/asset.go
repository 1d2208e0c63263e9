package domain

// AssetCategory groups assets that share the same eligible services (e.g. "buildings")
type AssetCategory string

// AssetRef identifies the asset a booking is made for.
// Geometry is owned by the map collaborator and never reaches the engine.
type AssetRef struct {
	ID       string
	Category AssetCategory
}
