package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/segyhp/loan-backoffice/internal/config"
)

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Storage persists rendered report documents.
type Storage interface {
	// Save stores data under a name derived from fileName and returns the
	// location it was written to.
	Save(ctx context.Context, fileName string, data []byte) (string, error)
}

type Local struct {
	BaseDir string
}

// NewLocal creates a local storage; baseDir will be created if missing.
func NewLocal(baseDir string) (*Local, error) {
	if baseDir == "" {
		baseDir = "./snapshots"
	}

	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to ensure storage dir %q: %w", baseDir, err)
	}

	return &Local{BaseDir: baseDir}, nil
}

// Save writes data with a random prefix so repeated names never collide.
func (s *Local) Save(ctx context.Context, fileName string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fileName = filepath.Base(fileName)

	randBytes := make([]byte, 8)
	if _, err := rand.Read(randBytes); err != nil {
		return "", fmt.Errorf("failed to generate file name: %w", err)
	}
	final := fmt.Sprintf("%s_%s", hex.EncodeToString(randBytes), fileName)

	path := filepath.Join(s.BaseDir, final)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("failed to finalize file: %w", err)
	}

	return path, nil
}

// CleanupOlderThan deletes files older than d. Removal is best-effort.
func (s *Local) CleanupOlderThan(d time.Duration) error {
	now := time.Now()
	return filepath.WalkDir(s.BaseDir, func(path string, de fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if de.IsDir() {
			return nil
		}
		info, err := de.Info()
		if err != nil {
			return nil
		}
		if now.Sub(info.ModTime()) > d {
			_ = os.Remove(path)
		}
		return nil
	})
}

// NewFromConfig picks the backend named by STORAGE_DRIVER.
func NewFromConfig(cfg config.StorageConfig) (Storage, error) {
	if cfg.Driver == "s3" {
		return NewS3(S3Config{
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKey,
			SecretAccessKey: cfg.S3SecretKey,
			Bucket:          cfg.S3Bucket,
			UseSSL:          cfg.S3UseSSL,
			Region:          cfg.S3Region,
			Prefix:          cfg.S3Prefix,
		})
	}
	return NewLocal(cfg.Dir)
}
