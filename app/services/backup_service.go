package services

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/blake2b"

	"homebase/app/models"
	"homebase/app/storage"
)

const (
	archiveSuffix = ".tar.gz"
	recordSuffix  = ".json"
)

// BackupService archives the blog store into the backup store.
type BackupService struct {
	blog    storage.BlobStore
	backups storage.BlobStore
	now     func() time.Time
}

// NewBackupService creates a BackupService snapshotting blog into backups.
func NewBackupService(blog, backups storage.BlobStore) *BackupService {
	return &BackupService{blog: blog, backups: backups, now: time.Now}
}

// Run snapshots every blog blob into a tar.gz archive, writes it to the
// backup store and records label, date, size and checksum beside it.
func (s *BackupService) Run(ctx context.Context) (*models.Backup, error) {
	keys, err := s.blog.List(ctx, "/")
	if err != nil {
		return nil, fmt.Errorf("list blog keys: %w", err)
	}

	now := s.now().UTC()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for _, key := range keys {
		data, err := s.blog.Read(ctx, key)
		if errors.Is(err, storage.ErrNotFound) {
			// Removed between list and read; nothing to archive.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", key, err)
		}
		hdr := &tar.Header{
			Name:    strings.TrimPrefix(key, "/"),
			Mode:    0o644,
			Size:    int64(len(data)),
			ModTime: now,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return nil, fmt.Errorf("write archive header for %s: %w", key, err)
		}
		if _, err := tw.Write(data); err != nil {
			return nil, fmt.Errorf("write archive entry for %s: %w", key, err)
		}
	}
	if err := tw.Close(); err != nil {
		return nil, fmt.Errorf("close archive: %w", err)
	}
	if err := gz.Close(); err != nil {
		return nil, fmt.Errorf("close gzip stream: %w", err)
	}

	sum := blake2b.Sum256(buf.Bytes())
	record := &models.Backup{
		Label:    "backup-" + now.Format("20060102-150405"),
		Date:     now,
		Size:     int64(buf.Len()),
		Checksum: hex.EncodeToString(sum[:]),
	}

	if err := s.backups.Write(ctx, "/"+record.Label+archiveSuffix, buf.Bytes()); err != nil {
		return nil, fmt.Errorf("write archive %s: %w", record.Label, err)
	}
	meta, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("marshal backup record: %w", err)
	}
	if err := s.backups.Write(ctx, "/"+record.Label+recordSuffix, meta); err != nil {
		return nil, fmt.Errorf("write backup record %s: %w", record.Label, err)
	}

	log.Info().Str("label", record.Label).Int64("size", record.Size).
		Int("entries", len(keys)).Msg("backup complete")
	return record, nil
}

// ListBackups returns all backup records, newest first. Unparsable records
// are skipped.
func (s *BackupService) ListBackups(ctx context.Context) ([]models.Backup, error) {
	keys, err := s.backups.List(ctx, "/")
	if err != nil {
		return nil, fmt.Errorf("list backup keys: %w", err)
	}

	records := []models.Backup{}
	for _, key := range keys {
		if !strings.HasSuffix(key, recordSuffix) {
			continue
		}
		raw, err := s.backups.Read(ctx, key)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", key, err)
		}
		var record models.Backup
		if err := json.Unmarshal(raw, &record); err != nil {
			log.Warn().Str("key", key).Err(err).Msg("skipping unparsable backup record")
			continue
		}
		records = append(records, record)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.After(records[j].Date)
	})
	return records, nil
}
