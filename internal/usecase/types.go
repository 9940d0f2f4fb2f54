package usecase

import (
	"context"
	"io"
	"sort"
	"strings"

	"resume-forge/internal/domain"
	"resume-forge/internal/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	ErrInvalidStep     = errors.New("step must be between 1 and 8")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrUnknownSection  = errors.New("unknown section")
	ErrDuplicateSkill  = errors.New("skill already exists")
	ErrNoNarrator      = errors.New("narrative generation is disabled")
)

// ValidationError carries one message per offending field. The session is
// left untouched when it is returned.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

// orNil keeps the typed-nil pitfall out of callers.
func (e *ValidationError) orNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// NarrationError marks a failure of the narrative generator during export.
type NarrationError struct {
	Field string
	Err   error
}

func (e *NarrationError) Error() string { return "generate " + e.Field + ": " + e.Err.Error() }

func (e *NarrationError) Unwrap() error { return e.Err }

// SessionStore keeps wizard sessions between requests.
type SessionStore interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	Put(ctx context.Context, s *domain.Session) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ResumeStore is the snapshot, backup and remote mirror persistence.
type ResumeStore interface {
	Save(ctx context.Context, userID string, doc model.Document) (string, error)
	Load(userID, filename string) (model.Document, error)
	LoadBackup(userID, filename string) (model.Document, error)
	Fetch(ctx context.Context, userID string) (model.Document, error)
	List(userID string) ([]string, error)
	ListBackups(userID string) ([]string, error)
}

// ImageStore keeps uploaded profile pictures.
type ImageStore interface {
	Put(ctx context.Context, userID, base, ext string, r io.Reader, size int64) (string, error)
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
}

type Renderer interface {
	Render(name string, doc model.Document) (string, error)
}

type PDFRenderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

type Previewer interface {
	Write(ctx context.Context, html string, doc model.Document) (string, error)
}

// Narrator fills in prose the user left empty.
type Narrator interface {
	ProfileSummary(ctx context.Context, info model.PersonalInfo, skills []string, experience []model.Experience, education []model.Education) (string, error)
	ProjectDescription(ctx context.Context, name string, technologies []string) (string, error)
	JobDescription(ctx context.Context, company, position, start, end, technologies string) (string, error)
}

// Source names where Restore reads a document from.
type Source string

const (
	SourceSnapshot Source = "snapshot"
	SourceBackup   Source = "backup"
	SourceRemote   Source = "remote"
	SourceSample   Source = "sample"
)
