package dto

import "time"

// ArchivedExport describes a compensation export kept in the archive.
type ArchivedExport struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	Format      string    `json:"format"`
	Size        int       `json:"size"`
	Token       string    `json:"token"`
	DownloadURL string    `json:"downloadUrl,omitempty"`
	ExpiresAt   time.Time `json:"expiresAt"`
}
