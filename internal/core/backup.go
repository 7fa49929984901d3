package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"homeinventory/pkg/domain"
)

// BackupDateLayout formats the date used in export file names.
const BackupDateLayout = "2006-01-02"

// exportStampLayout matches a millisecond ISO-8601 UTC timestamp.
const exportStampLayout = "2006-01-02T15:04:05.000Z07:00"

// NewBackup builds an export document stamped with now.
func NewBackup(c domain.Collections, now time.Time) domain.Backup {
	c = c.Clone()
	return domain.Backup{
		Rooms:      c.Rooms,
		Items:      c.Items,
		Projects:   c.Projects,
		ExportDate: now.UTC().Format(exportStampLayout),
		Version:    domain.BackupVersion,
	}
}

// EncodeBackup renders the backup as indented JSON.
func EncodeBackup(b domain.Backup) ([]byte, error) {
	payload, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode backup: %w", err)
	}
	return payload, nil
}

// BackupFileName returns inventory_backup_YYYY-MM-DD.json for now.
func BackupFileName(now time.Time) string {
	return "inventory_backup_" + now.UTC().Format(BackupDateLayout) + ".json"
}

// ReportFileName returns inventory_report_YYYY-MM-DD with the given extension.
func ReportFileName(now time.Time, ext string) string {
	return "inventory_report_" + now.UTC().Format(BackupDateLayout) + "." + ext
}

// DecodeBackup parses an import document. Keys that are missing or not
// arrays are left nil so the matching collection is kept; a document that is
// not a JSON object fails with ErrImport.
func DecodeBackup(data []byte) (domain.BackupImport, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return domain.BackupImport{}, fmt.Errorf("%w: %v", ErrImport, err)
	}
	var out domain.BackupImport
	if err := decodeArray(fields, "rooms", &out.Rooms); err != nil {
		return domain.BackupImport{}, err
	}
	if err := decodeArray(fields, "items", &out.Items); err != nil {
		return domain.BackupImport{}, err
	}
	if err := decodeArray(fields, "projects", &out.Projects); err != nil {
		return domain.BackupImport{}, err
	}
	return out, nil
}

func decodeArray[T any](fields map[string]json.RawMessage, key string, dst *[]T) error {
	raw, ok := fields[key]
	if !ok {
		return nil
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil
	}
	out := []T{}
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrImport, key, err)
	}
	*dst = out
	return nil
}
