package domain

// StationConfig names one practice station and the drill run there. Station
// configurations are transient: they exist only to render a generated
// rotation schedule and are never persisted.
type StationConfig struct {
	Name    string `json:"name"`
	DrillID string `json:"drillId,omitempty"`
}
