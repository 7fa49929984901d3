// Package archive materialises backup documents and report downloads and
// keeps a copy of each in the blob store.
package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"

	"homeinventory/internal/blob"
	"homeinventory/internal/core"
	"homeinventory/internal/views"
	"homeinventory/pkg/domain"
)

// Format enumerates report artifact encodings.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

const (
	BackupPrefix = "backups/"
	ReportPrefix = "reports/"

	contentTypeJSON = "application/json"
	contentTypeCSV  = "text/csv"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	maxKeyAttempts = 100
)

// Artifact is a rendered document together with where it was archived.
type Artifact struct {
	Info        blob.Info
	FileName    string
	ContentType string
	Payload     []byte

	prefix   string
	metadata map[string]string
}

// Archiver renders artifacts and writes them to a blob.Store.
type Archiver struct {
	store  blob.Store
	logger *zap.Logger
	now    func() time.Time
}

// New returns an Archiver writing into store.
func New(store blob.Store, logger *zap.Logger) *Archiver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Archiver{store: store, logger: logger, now: time.Now}
}

// RenderBackup encodes c as a backup document without storing it.
func (a *Archiver) RenderBackup(c domain.Collections) (Artifact, error) {
	now := a.now()
	payload, err := core.EncodeBackup(core.NewBackup(c, now))
	if err != nil {
		return Artifact{}, fmt.Errorf("encode backup: %w", err)
	}
	return Artifact{
		FileName:    core.BackupFileName(now),
		ContentType: contentTypeJSON,
		Payload:     payload,
		prefix:      BackupPrefix,
		metadata: map[string]string{
			"rooms":    fmt.Sprint(len(c.Rooms)),
			"items":    fmt.Sprint(len(c.Items)),
			"projects": fmt.Sprint(len(c.Projects)),
		},
	}, nil
}

// RenderReport encodes rows in format without storing them.
func (a *Archiver) RenderReport(format Format, rows []views.ExportRow, currency string) (Artifact, error) {
	var (
		buf         bytes.Buffer
		contentType string
		err         error
	)
	switch format {
	case FormatCSV:
		contentType = contentTypeCSV
		err = views.WriteCSV(&buf, rows, currency)
	case FormatXLSX:
		contentType = contentTypeXLSX
		err = views.WriteXLSX(&buf, rows, currency)
	default:
		return Artifact{}, fmt.Errorf("unsupported report format %q", format)
	}
	if err != nil {
		return Artifact{}, fmt.Errorf("render %s report: %w", format, err)
	}
	return Artifact{
		FileName:    core.ReportFileName(a.now(), string(format)),
		ContentType: contentType,
		Payload:     buf.Bytes(),
		prefix:      ReportPrefix,
		metadata:    map[string]string{"rows": fmt.Sprint(len(rows)), "currency": currency},
	}, nil
}

// List returns archived artifacts under prefix.
func (a *Archiver) List(ctx context.Context, prefix string) ([]blob.Info, error) {
	return a.store.List(ctx, prefix)
}

// Store writes a rendered artifact under its prefix, adding "-2", "-3", ...
// before the extension while the key is taken. The returned copy carries
// the blob info.
func (a *Archiver) Store(ctx context.Context, art Artifact) (Artifact, error) {
	ext := path.Ext(art.FileName)
	base := strings.TrimSuffix(art.FileName, ext)
	for attempt := 1; attempt <= maxKeyAttempts; attempt++ {
		key := art.prefix + art.FileName
		if attempt > 1 {
			key = fmt.Sprintf("%s%s-%d%s", art.prefix, base, attempt, ext)
		}
		info, err := a.store.Put(ctx, key, bytes.NewReader(art.Payload), blob.PutOptions{ContentType: art.ContentType, Metadata: art.metadata})
		if errors.Is(err, blob.ErrExists) {
			continue
		}
		if err != nil {
			a.logger.Warn("archive write failed", zap.String("key", key), zap.Error(err))
			return Artifact{}, fmt.Errorf("archive %s: %w", key, err)
		}
		a.logger.Info("archived artifact",
			zap.String("key", key),
			zap.Int64("size", info.Size),
			zap.String("driver", string(a.store.Driver())))
		art.Info = info
		return art, nil
	}
	return Artifact{}, fmt.Errorf("archive %s%s: no free key after %d attempts", art.prefix, art.FileName, maxKeyAttempts)
}
