package models

// BackupConfig is a small settings singleton persisted under its own
// key. LastRun is an ISO timestamp of the last completed export.
type BackupConfig struct {
	Enabled       bool   `json:"enabled"`
	UploadEnabled bool   `json:"uploadEnabled"`
	FrequencyDays int    `json:"frequencyDays"`
	LastRun       string `json:"lastRun,omitempty"`
}

// AppSettings holds miscellaneous facility-wide flags.
type AppSettings struct {
	FacilityName    string `json:"facilityName"`
	RequireMenuName bool   `json:"requireMenuName"`
}
