package resourcecmd

// FeatureGates exposes the runtime toggles consulted by resource handlers.
type FeatureGates struct {
	// ResourceStoreEnabled reports whether resources are mirrored locally.
	ResourceStoreEnabled func() bool
}

func (g FeatureGates) resourceStoreEnabled() bool {
	if g.ResourceStoreEnabled == nil {
		return true
	}
	return g.ResourceStoreEnabled()
}
