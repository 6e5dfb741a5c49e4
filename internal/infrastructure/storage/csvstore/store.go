// Package csvstore reads and writes the compound library in its curated CSV
// file format, with optional backup-on-write and change watching for hot
// reload.
package csvstore

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/turtacn/stilbar/internal/domain/compound"
	"github.com/turtacn/stilbar/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/stilbar/pkg/errors"
)

var header = []string{"num", "compound_name", "barcode", "smiles"}

// Store persists the compound library as a CSV file.
type Store struct {
	path          string
	backupOnWrite bool
	logger        logging.Logger
}

// NewStore constructs a Store for the given file path.
func NewStore(path string, backupOnWrite bool, log logging.Logger) *Store {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Store{path: path, backupOnWrite: backupOnWrite, logger: log.Named("csvstore")}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the whole library file.
func (s *Store) Load() ([]*compound.Compound, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeLibraryImportFailed, "failed to open library file")
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = len(header)

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeLibraryImportFailed, "failed to parse library file")
	}
	if len(records) == 0 || records[0][0] != header[0] {
		return nil, errors.New(errors.CodeLibraryImportFailed, "library file has no header row")
	}

	compounds := make([]*compound.Compound, 0, len(records)-1)
	for i, record := range records[1:] {
		seq, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, errors.New(errors.CodeLibraryImportFailed, "sequence column is not a number").
				WithDetail(fmt.Sprintf("row %d: %q", i+2, record[0]))
		}
		c, err := compound.New(seq, record[1], record[2], record[3])
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeLibraryImportFailed, "invalid compound row").
				WithDetail(fmt.Sprintf("row %d", i+2))
		}
		compounds = append(compounds, c)
	}

	s.logger.Info("loaded compound library",
		logging.String("path", s.path), logging.Int("compounds", len(compounds)))
	return compounds, nil
}

// Save rewrites the library file.  The previous file is first copied to
// <path>.backup when backup-on-write is enabled, and the new content is
// written to a temp file and renamed into place so readers never observe a
// partial file.
func (s *Store) Save(compounds []*compound.Compound) error {
	if s.backupOnWrite {
		if err := s.backup(); err != nil {
			return err
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".library-*.csv")
	if err != nil {
		return errors.Wrap(err, errors.CodeLibraryExportFailed, "failed to create temp file")
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		tmp.Close()
		return errors.Wrap(err, errors.CodeLibraryExportFailed, "failed to write header")
	}
	for _, c := range compounds {
		row := []string{strconv.Itoa(c.Seq), c.Name, c.Code, c.SMILES}
		if err := w.Write(row); err != nil {
			tmp.Close()
			return errors.Wrap(err, errors.CodeLibraryExportFailed, "failed to write row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return errors.Wrap(err, errors.CodeLibraryExportFailed, "failed to flush library file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, errors.CodeLibraryExportFailed, "failed to close temp file")
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return errors.Wrap(err, errors.CodeLibraryExportFailed, "failed to replace library file")
	}
	s.logger.Info("saved compound library",
		logging.String("path", s.path), logging.Int("compounds", len(compounds)))
	return nil
}

func (s *Store) backup() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, errors.CodeLibraryExportFailed, "failed to read library file for backup")
	}
	if err := os.WriteFile(s.path+".backup", data, 0o644); err != nil {
		return errors.Wrap(err, errors.CodeLibraryExportFailed, "failed to write backup file")
	}
	return nil
}

// Watch reloads the file whenever it changes and hands the result to
// onReload.  Editors and atomic renames fire several events per change, so
// events are debounced.  Blocks until the context is cancelled.
func (s *Store) Watch(ctx context.Context, onReload func([]*compound.Compound)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to create file watcher")
	}
	defer watcher.Close()

	// Watch the directory: renames replace the file inode.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to watch library directory")
	}

	var timer *time.Timer
	reload := make(chan struct{}, 1)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(s.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(100*time.Millisecond, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})
		case <-reload:
			compounds, err := s.Load()
			if err != nil {
				s.logger.Warn("library reload failed, keeping previous state", logging.Err(err))
				continue
			}
			onReload(compounds)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("file watcher error", logging.Err(err))
		}
	}
}
