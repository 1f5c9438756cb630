package dto

// VersionInfo respuesta de GET /api/v1/{recurso}/version.
type VersionInfo struct {
	CurrentVersion    string   `json:"current_version"`
	SupportedVersions []string `json:"supported_versions"`
	IsDefault         bool     `json:"is_default"`
	Description       string   `json:"description"`
}
