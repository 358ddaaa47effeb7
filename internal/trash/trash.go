// Package trash moves files into the platform trash instead of
// unlinking them, so every deletion stays recoverable.
package trash

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/elise-bgn/DownloadsCleaner/internal/fileutil"
	"github.com/elise-bgn/DownloadsCleaner/internal/platform"
)

// maxNameAttempts bounds the search for a free name inside the trash.
const maxNameAttempts = 10000

// ErrNoMetadata is returned when the platform trash keeps no restore
// metadata, so listing original paths and restoring are unavailable.
var ErrNoMetadata = errors.New("trash keeps no restore metadata on this platform")

// Record represents a soft-deleted file tracked in the trash.
type Record struct {
	// Name is the file's name inside the trash files directory. It is
	// the handle restore operations use.
	Name string

	// OriginalPath is where the file lived before deletion. Empty when
	// the platform keeps no metadata.
	OriginalPath string

	// TrashedPath is the file's current location.
	TrashedPath string

	// DeletedAt is when the file entered the trash. Zero when unknown.
	DeletedAt time.Time

	// Size in bytes.
	Size int64
}

// Trasher abstracts the delete operation. Enables mocking in tests to
// prove simulate mode never deletes.
type Trasher interface {
	Trash(ctx context.Context, path string) (Record, error)
}

// Bin is the platform trash directory pair: one directory holding the
// files themselves and, where supported, one holding restore metadata.
type Bin struct {
	filesDir string
	infoDir  string
	clock    func() time.Time
}

// NewBin returns the bin for the current platform.
func NewBin() (*Bin, error) {
	info, err := platform.GetInfo()
	if err != nil {
		return nil, err
	}
	return NewBinAt(info.TrashFilesDir, info.TrashInfoDir), nil
}

// NewBinAt returns a bin rooted at explicit directories. infoDir may be
// empty for platforms without restore metadata.
func NewBinAt(filesDir, infoDir string) *Bin {
	return &Bin{
		filesDir: filesDir,
		infoDir:  infoDir,
		clock:    time.Now,
	}
}

// CanRestore reports whether this bin records enough metadata to
// restore files.
func (b *Bin) CanRestore() bool {
	return b.infoDir != ""
}

// FilesDir returns the directory trashed files land in.
func (b *Bin) FilesDir() string {
	return b.filesDir
}

// Trash moves the file at path into the bin and returns its record.
// The file itself is never unlinked.
func (b *Bin) Trash(ctx context.Context, path string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return Record{}, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	fi, err := os.Lstat(abs)
	if err != nil {
		return Record{}, fmt.Errorf("failed to stat %s: %w", abs, err)
	}

	// Trash directories are user-private.
	if err := os.MkdirAll(b.filesDir, 0700); err != nil {
		return Record{}, fmt.Errorf("failed to create trash directory: %w", err)
	}
	if b.infoDir != "" {
		if err := os.MkdirAll(b.infoDir, 0700); err != nil {
			return Record{}, fmt.Errorf("failed to create trash info directory: %w", err)
		}
	}

	base := filepath.Base(abs)
	deletedAt := b.clock()

	if b.infoDir == "" {
		return b.trashWithoutMetadata(abs, base, fi.Size(), deletedAt)
	}

	for n := 0; n < maxNameAttempts; n++ {
		name := numberedName(base, n)
		infoPath := filepath.Join(b.infoDir, name+infoSuffix)

		// Creating the sidecar exclusively reserves the name.
		f, err := os.OpenFile(infoPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return Record{}, fmt.Errorf("failed to reserve trash slot: %w", err)
		}

		_, werr := f.WriteString(formatTrashInfo(abs, deletedAt))
		if cerr := f.Close(); werr == nil {
			werr = cerr
		}
		if werr != nil {
			os.Remove(infoPath)
			return Record{}, fmt.Errorf("failed to write trash metadata: %w", werr)
		}

		dest := filepath.Join(b.filesDir, name)
		if err := fileutil.MoveFile(abs, dest); err != nil {
			os.Remove(infoPath)
			return Record{}, fmt.Errorf("failed to move %s to trash: %w", abs, err)
		}

		return Record{
			Name:         name,
			OriginalPath: abs,
			TrashedPath:  dest,
			DeletedAt:    deletedAt,
			Size:         fi.Size(),
		}, nil
	}

	return Record{}, fmt.Errorf("no free trash name for %s", base)
}

// trashWithoutMetadata covers platforms whose trash is a bare folder.
func (b *Bin) trashWithoutMetadata(abs, base string, size int64, deletedAt time.Time) (Record, error) {
	for n := 0; n < maxNameAttempts; n++ {
		name := numberedName(base, n)
		dest := filepath.Join(b.filesDir, name)

		if _, err := os.Lstat(dest); err == nil {
			continue
		} else if !errors.Is(err, fs.ErrNotExist) {
			return Record{}, fmt.Errorf("failed to probe trash slot: %w", err)
		}

		if err := fileutil.MoveFile(abs, dest); err != nil {
			return Record{}, fmt.Errorf("failed to move %s to trash: %w", abs, err)
		}

		return Record{
			Name:        name,
			TrashedPath: dest,
			DeletedAt:   deletedAt,
			Size:        size,
		}, nil
	}

	return Record{}, fmt.Errorf("no free trash name for %s", base)
}

// List returns the bin's contents, newest deletions first. On platforms
// without metadata only names and sizes are known.
func (b *Bin) List() ([]Record, error) {
	if b.infoDir == "" {
		return b.listWithoutMetadata()
	}

	entries, err := os.ReadDir(b.infoDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read trash info directory: %w", err)
	}

	var records []Record
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), infoSuffix) {
			continue
		}

		data, err := os.ReadFile(filepath.Join(b.infoDir, e.Name()))
		if err != nil {
			continue
		}
		origPath, deletedAt, err := parseTrashInfo(data)
		if err != nil {
			continue
		}

		name := strings.TrimSuffix(e.Name(), infoSuffix)
		trashedPath := filepath.Join(b.filesDir, name)

		// Sidecars whose payload is gone are orphans; skip them.
		fi, err := os.Lstat(trashedPath)
		if err != nil {
			continue
		}

		records = append(records, Record{
			Name:         name,
			OriginalPath: origPath,
			TrashedPath:  trashedPath,
			DeletedAt:    deletedAt,
			Size:         fi.Size(),
		})
	}

	sort.Slice(records, func(i, j int) bool {
		if !records[i].DeletedAt.Equal(records[j].DeletedAt) {
			return records[i].DeletedAt.After(records[j].DeletedAt)
		}
		return records[i].Name < records[j].Name
	})

	return records, nil
}

func (b *Bin) listWithoutMetadata() ([]Record, error) {
	entries, err := os.ReadDir(b.filesDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read trash directory: %w", err)
	}

	var records []Record
	for _, e := range entries {
		info, err := e.Info()
		if err != nil {
			continue
		}
		records = append(records, Record{
			Name:        e.Name(),
			TrashedPath: filepath.Join(b.filesDir, e.Name()),
			Size:        info.Size(),
		})
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Name < records[j].Name
	})

	return records, nil
}

// Restore moves a trashed file back to its original location and
// removes its metadata. It refuses to overwrite anything already at
// the original path.
func (b *Bin) Restore(name string) (Record, error) {
	if b.infoDir == "" {
		return Record{}, ErrNoMetadata
	}

	infoPath := filepath.Join(b.infoDir, name+infoSuffix)
	data, err := os.ReadFile(infoPath)
	if err != nil {
		return Record{}, fmt.Errorf("no trash entry named %s: %w", name, err)
	}

	origPath, deletedAt, err := parseTrashInfo(data)
	if err != nil {
		return Record{}, fmt.Errorf("unreadable metadata for %s: %w", name, err)
	}

	trashedPath := filepath.Join(b.filesDir, name)
	fi, err := os.Lstat(trashedPath)
	if err != nil {
		return Record{}, fmt.Errorf("trash entry %s has no file: %w", name, err)
	}

	if _, err := os.Lstat(origPath); err == nil {
		return Record{}, fmt.Errorf("%s already exists, not overwriting", origPath)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return Record{}, fmt.Errorf("failed to probe %s: %w", origPath, err)
	}

	if err := fileutil.EnsureDir(filepath.Dir(origPath)); err != nil {
		return Record{}, fmt.Errorf("failed to recreate parent directory: %w", err)
	}
	if err := fileutil.MoveFile(trashedPath, origPath); err != nil {
		return Record{}, fmt.Errorf("failed to restore %s: %w", name, err)
	}

	os.Remove(infoPath)

	return Record{
		Name:         name,
		OriginalPath: origPath,
		TrashedPath:  trashedPath,
		DeletedAt:    deletedAt,
		Size:         fi.Size(),
	}, nil
}

// numberedName returns base for attempt 0 and stem-n.ext afterwards.
func numberedName(base string, n int) string {
	if n == 0 {
		return base
	}
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return fmt.Sprintf("%s-%d%s", stem, n, ext)
}
