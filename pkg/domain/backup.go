package domain

// BackupVersion is written into every exported backup document.
const BackupVersion = "1.1"

// Backup is the full export document.
type Backup struct {
	Rooms      []Room    `json:"rooms"`
	Items      []Item    `json:"items"`
	Projects   []Project `json:"projects"`
	ExportDate string    `json:"exportDate"`
	Version    string    `json:"version"`
}

// BackupImport is a decoded import document. A nil slice means the key was
// absent (or not an array) and the matching collection must be left alone.
type BackupImport struct {
	Rooms    []Room
	Items    []Item
	Projects []Project
}

// Empty reports whether the document carried none of the three collections.
func (b BackupImport) Empty() bool {
	return b.Rooms == nil && b.Items == nil && b.Projects == nil
}
