// Package storage persists resume documents: immutable local snapshots, a
// rolling set of backups and a mirror in the remote document database.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"resume-forge/internal/domain"
	"resume-forge/internal/model"

	"github.com/pkg/errors"
)

const (
	stampLayout    = "20060102_150405"
	snapshotPrefix = "resume_data_"
	backupPrefix   = "resume_backup_"

	// DefaultKeepBackups is the rolling backup retention per user.
	DefaultKeepBackups = 5
)

var (
	ErrNotFound    = domain.ErrNotFound
	ErrMalformed   = errors.New("malformed resume file")
	ErrInvalidName = errors.New("invalid snapshot name")

	snapshotName = regexp.MustCompile(`^resume_data_\d{8}_\d{6}\.json$`)
	backupName   = regexp.MustCompile(`^resume_backup_\d{8}_\d{6}\.json$`)
)

// DocumentStore is the remote document database.
type DocumentStore interface {
	Get(ctx context.Context, key string) (model.Document, error)
	Set(ctx context.Context, key string, doc model.Document) error
}

// DocumentKey is the remote key of a user's document.
func DocumentKey(userID string) string {
	return "users/" + userID
}

type ResumeStore struct {
	root   string
	remote DocumentStore
	keep   int
	now    func() time.Time
}

type Option func(*ResumeStore)

// WithClock replaces time.Now for snapshot stamps.
func WithClock(now func() time.Time) Option {
	return func(s *ResumeStore) { s.now = now }
}

func WithKeepBackups(n int) Option {
	return func(s *ResumeStore) {
		if n > 0 {
			s.keep = n
		}
	}
}

// New returns a store rooted at dir. remote may be nil, in which case the
// mirror step is skipped.
func New(dir string, remote DocumentStore, opts ...Option) *ResumeStore {
	s := &ResumeStore{root: dir, remote: remote, keep: DefaultKeepBackups, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *ResumeStore) userDir(userID string) string {
	return filepath.Join(s.root, "users", userID)
}

func (s *ResumeStore) backupDir(userID string) string {
	return filepath.Join(s.root, "backups", userID)
}

// TargetError is the failure of one persistence target during Save.
type TargetError struct {
	Target string
	Err    error
}

// SaveError reports targets that failed after the local snapshot was
// written. Earlier writes are kept.
type SaveError struct {
	Path     string
	Failures []TargetError
}

func (e *SaveError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, fmt.Sprintf("%s: %v", f.Target, f.Err))
	}
	return "resume saved with errors: " + strings.Join(parts, "; ")
}

// Targets lists the names of the failed targets.
func (e *SaveError) Targets() []string {
	out := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		out = append(out, f.Target)
	}
	return out
}

// Save writes a new snapshot, mirrors the document remotely, writes a backup
// and rotates backups. It returns the snapshot path. A failed snapshot write
// aborts; later failures come back as *SaveError alongside the path.
func (s *ResumeStore) Save(ctx context.Context, userID string, doc model.Document) (string, error) {
	body, err := model.Encode(doc)
	if err != nil {
		return "", err
	}

	path, err := s.writeStamped(s.userDir(userID), snapshotPrefix, body)
	if err != nil {
		return "", errors.Wrap(err, "write snapshot")
	}
	slog.Info("snapshot saved", "user_id", userID, "path", path)

	var failures []TargetError
	if s.remote != nil {
		if err := s.remote.Set(ctx, DocumentKey(userID), doc); err != nil {
			slog.Error("remote mirror failed", "user_id", userID, "error", err)
			failures = append(failures, TargetError{Target: "remote", Err: err})
		}
	}
	if _, err := s.writeStamped(s.backupDir(userID), backupPrefix, body); err != nil {
		slog.Error("backup failed", "user_id", userID, "error", err)
		failures = append(failures, TargetError{Target: "backup", Err: err})
	} else if err := s.RotateBackups(userID); err != nil {
		slog.Error("backup rotation failed", "user_id", userID, "error", err)
		failures = append(failures, TargetError{Target: "rotate", Err: err})
	}

	if len(failures) > 0 {
		return path, &SaveError{Path: path, Failures: failures}
	}
	return path, nil
}

var createExclusive = func(path string) (io.WriteCloser, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
}

// writeStamped creates <dir>/<prefix><stamp>.json exclusively, moving the
// stamp forward a second at a time while the name is taken.
func (s *ResumeStore) writeStamped(dir, prefix string, body []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	stamp := s.now()
	for i := 0; i < 3600; i++ {
		path := filepath.Join(dir, prefix+stamp.Format(stampLayout)+".json")
		f, err := createExclusive(path)
		if errors.Is(err, os.ErrExist) {
			stamp = stamp.Add(time.Second)
			continue
		}
		if err != nil {
			return "", err
		}
		_, err = f.Write(body)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			// a partial file would show up as a snapshot or backup
			_ = os.Remove(path)
			return "", errors.Wrapf(err, "write %s", path)
		}
		return path, nil
	}
	return "", errors.Errorf("no free file name in %s", dir)
}

// Load reads a snapshot written by Save.
func (s *ResumeStore) Load(userID, filename string) (model.Document, error) {
	if !snapshotName.MatchString(filename) {
		return model.Document{}, errors.Wrap(ErrInvalidName, filename)
	}
	return readDocument(filepath.Join(s.userDir(userID), filename))
}

// LoadBackup reads one file of the rolling backup set.
func (s *ResumeStore) LoadBackup(userID, filename string) (model.Document, error) {
	if !backupName.MatchString(filename) {
		return model.Document{}, errors.Wrap(ErrInvalidName, filename)
	}
	return readDocument(filepath.Join(s.backupDir(userID), filename))
}

func readDocument(path string) (model.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.Document{}, errors.Wrap(ErrNotFound, filepath.Base(path))
		}
		return model.Document{}, errors.Wrap(err, "read snapshot")
	}
	doc, err := model.Decode(raw)
	if err != nil {
		return model.Document{}, errors.Wrap(ErrMalformed, err.Error())
	}
	return doc, nil
}

// Fetch reads the remote copy of the user's document.
func (s *ResumeStore) Fetch(ctx context.Context, userID string) (model.Document, error) {
	if s.remote == nil {
		return model.Document{}, ErrNotFound
	}
	doc, err := s.remote.Get(ctx, DocumentKey(userID))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return model.Document{}, ErrNotFound
		}
		if errors.Is(err, model.ErrInvalidDocument) {
			return model.Document{}, errors.Wrap(ErrMalformed, err.Error())
		}
		return model.Document{}, err
	}
	return doc, nil
}

// List returns the user's snapshot names, oldest first.
func (s *ResumeStore) List(userID string) ([]string, error) {
	return listMatching(s.userDir(userID), snapshotName)
}

// ListBackups returns the user's retained backup names, oldest first.
func (s *ResumeStore) ListBackups(userID string) ([]string, error) {
	return listMatching(s.backupDir(userID), backupName)
}

func listMatching(dir string, pattern *regexp.Regexp) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, errors.Wrap(err, "list "+dir)
	}
	names := []string{}
	for _, e := range entries {
		if !e.IsDir() && pattern.MatchString(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// RotateBackups deletes all but the newest backups of the user.
func (s *ResumeStore) RotateBackups(userID string) error {
	names, err := s.ListBackups(userID)
	if err != nil {
		return err
	}
	if len(names) <= s.keep {
		return nil
	}
	for _, name := range names[:len(names)-s.keep] {
		if err := os.Remove(filepath.Join(s.backupDir(userID), name)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return errors.Wrap(err, "remove backup")
		}
		slog.Debug("backup rotated out", "user_id", userID, "name", name)
	}
	return nil
}
