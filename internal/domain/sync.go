package domain

import "time"

// CatalogSource indica de onde veio a última lista apresentada
type CatalogSource string

const (
	CatalogSourceRemote CatalogSource = "remote"
	CatalogSourceLocal  CatalogSource = "local"
)

// SyncStatus resume o estado da sincronização entre slot local e backend remoto
type SyncStatus struct {
	RemoteConfigured bool          `json:"remote_configured"`
	LastLoadSource   CatalogSource `json:"last_load_source,omitempty"`
	LastLoadAt       time.Time     `json:"last_load_at"`
	LastUploadAt     time.Time     `json:"last_upload_at"`
	LastUploadError  string        `json:"last_upload_error,omitempty"`
	PendingUpload    bool          `json:"pending_upload"`
	LocalAhead       bool          `json:"local_ahead"`
	UploadsCompleted int           `json:"uploads_completed"`
	UploadsFailed    int           `json:"uploads_failed"`
}
