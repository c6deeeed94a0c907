package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/charlievieth/fastwalk"
	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"

	"github.com/nounsos/desktop/backend/internal/shared/types"
)

// fileExt is the suffix of persisted layout files
const fileExt = ".json.zst"

// Store persists layouts outside the process
type Store interface {
	Put(ctx context.Context, layout *types.Layout) error
	Delete(ctx context.Context, id string) error
	LoadAll(ctx context.Context) ([]*types.Layout, error)
}

// DiskStore keeps each layout as zstd-compressed JSON in a directory
type DiskStore struct {
	dir     string
	encoder *zstd.Encoder
	decoder *zstd.Decoder
	logger  *zap.Logger
}

// NewDiskStore creates dir if needed and returns a store rooted there
func NewDiskStore(dir string, logger *zap.Logger) (*DiskStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create layout directory: %w", err)
	}

	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("failed to create encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}

	return &DiskStore{
		dir:     dir,
		encoder: encoder,
		decoder: decoder,
		logger:  logger,
	}, nil
}

// Dir returns the directory layouts are stored in
func (s *DiskStore) Dir() string {
	return s.dir
}

// Put writes a layout, replacing any previous file with the same id
func (s *DiskStore) Put(ctx context.Context, layout *types.Layout) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := sonic.Marshal(layout)
	if err != nil {
		return fmt.Errorf("failed to marshal layout: %w", err)
	}

	path := s.path(layout.ID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, s.encoder.EncodeAll(data, nil), 0o644); err != nil {
		return fmt.Errorf("failed to write layout: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write layout: %w", err)
	}
	return nil
}

// Delete removes a layout file. Missing files are not an error.
func (s *DiskStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(s.path(id)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete layout: %w", err)
	}
	return nil
}

// LoadAll reads every layout file under the store directory. Unreadable
// files are logged and skipped.
func (s *DiskStore) LoadAll(ctx context.Context) ([]*types.Layout, error) {
	var (
		mu      sync.Mutex
		layouts []*types.Layout
	)

	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, s.dir, func(p string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil || d.IsDir() || !strings.HasSuffix(p, fileExt) {
			return nil
		}

		layout, err := s.read(p)
		if err != nil {
			s.logger.Warn("Skipping unreadable layout", zap.String("path", p), zap.Error(err))
			return nil
		}

		mu.Lock()
		layouts = append(layouts, layout)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan layouts: %w", err)
	}

	return layouts, nil
}

func (s *DiskStore) read(path string) (*types.Layout, error) {
	compressed, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	data, err := s.decoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress: %w", err)
	}

	var layout types.Layout
	if err := sonic.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("failed to unmarshal: %w", err)
	}
	if layout.ID == "" {
		return nil, errors.New("layout has empty id")
	}
	return &layout, nil
}

// Close releases compressor resources
func (s *DiskStore) Close() error {
	s.decoder.Close()
	return s.encoder.Close()
}

func (s *DiskStore) path(id string) string {
	return filepath.Join(s.dir, id+fileExt)
}
