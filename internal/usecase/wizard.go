package usecase

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"resume-forge/internal/domain"
	"resume-forge/internal/model"
	"resume-forge/pkg/validator"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Wizard drives the eight-step form. Mutating methods work on a session the
// caller opened with Open and persisted with Commit; on error the session is
// left as it was.
type Wizard struct {
	sessions SessionStore
	store    ResumeStore
	images   ImageStore
	now      func() time.Time
}

func NewWizard(sessions SessionStore, store ResumeStore, images ImageStore) *Wizard {
	return &Wizard{sessions: sessions, store: store, images: images, now: time.Now}
}

// WithClock replaces the wall clock, for tests.
func (w *Wizard) WithClock(now func() time.Time) *Wizard {
	w.now = now
	return w
}

// Start creates a fresh session at step 1 with an empty document.
func (w *Wizard) Start(ctx context.Context, userID uuid.UUID) (*domain.Session, error) {
	s := domain.NewSession(userID, w.now().UTC())
	if err := w.sessions.Put(ctx, s); err != nil {
		return nil, errors.Wrap(err, "store session")
	}
	slog.Info("session started", "session_id", s.ID, "user_id", userID)
	return s, nil
}

// Open returns the session if it belongs to userID. Sessions of other users
// are reported as not found.
func (w *Wizard) Open(ctx context.Context, userID, sessionID uuid.UUID) (*domain.Session, error) {
	s, err := w.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if s.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (w *Wizard) Commit(ctx context.Context, s *domain.Session) error {
	s.UpdatedAt = w.now().UTC()
	return errors.Wrap(w.sessions.Put(ctx, s), "store session")
}

// Discard drops the session, e.g. on sign-out.
func (w *Wizard) Discard(ctx context.Context, userID, sessionID uuid.UUID) error {
	if _, err := w.Open(ctx, userID, sessionID); err != nil {
		return err
	}
	return w.sessions.Delete(ctx, sessionID)
}

func (w *Wizard) Navigate(s *domain.Session, step int) error {
	if step < domain.StepPersonalInfo || step > domain.StepExport {
		return ErrInvalidStep
	}
	s.Step = step
	return nil
}

// SavePersonalInfo replaces the personal block and advances to step 2.
// The profile picture only changes through AttachProfilePicture.
func (w *Wizard) SavePersonalInfo(s *domain.Session, info model.PersonalInfo) error {
	info = trimPersonal(info)
	if err := PersonalInfoValidator(info); err != nil {
		return err
	}
	info.ProfilePic = s.Document.PersonalInfo.ProfilePic
	s.Document.PersonalInfo = info
	s.Step = domain.StepExperience
	return nil
}

func trimPersonal(p model.PersonalInfo) model.PersonalInfo {
	p.FullName = strings.TrimSpace(p.FullName)
	p.Email = strings.TrimSpace(p.Email)
	p.Phone = strings.TrimSpace(p.Phone)
	p.Location = strings.TrimSpace(p.Location)
	p.LinkedIn = strings.TrimSpace(p.LinkedIn)
	p.GitHub = strings.TrimSpace(p.GitHub)
	p.Summary = strings.TrimSpace(p.Summary)
	return p
}

func (w *Wizard) AddExperience(s *domain.Session, e model.Experience) error {
	if strings.TrimSpace(e.EndDate) == "" {
		e.EndDate = validator.Present
	}
	if err := ExperienceValidator(e); err != nil {
		return err
	}
	s.Document.Experience = append(s.Document.Experience, e)
	return nil
}

func (w *Wizard) AddEducation(s *domain.Session, e model.Education) error {
	if err := EducationValidator(e); err != nil {
		return err
	}
	s.Document.Education = append(s.Document.Education, e)
	return nil
}

func (w *Wizard) AddProject(s *domain.Session, p model.Project) error {
	if err := ProjectValidator(p); err != nil {
		return err
	}
	s.Document.Projects = append(s.Document.Projects, p)
	return nil
}

func (w *Wizard) AddCertification(s *domain.Session, c model.Certification) error {
	if err := CertificationValidator(c); err != nil {
		return err
	}
	s.Document.Certifications = append(s.Document.Certifications, c)
	return nil
}

func (w *Wizard) AddLanguage(s *domain.Session, l model.Language) error {
	if l.Proficiency == "" {
		l.Proficiency = "Native"
	}
	if err := LanguageValidator(l); err != nil {
		return err
	}
	s.Document.Languages = append(s.Document.Languages, l)
	return nil
}

// AddSkill appends one trimmed skill. Duplicates are rejected.
func (w *Wizard) AddSkill(s *domain.Session, skill string) error {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return &ValidationError{Fields: map[string]string{"skill": validator.RequiredMessage("skill")}}
	}
	if hasSkill(s.Document.Skills, skill) {
		return ErrDuplicateSkill
	}
	s.Document.Skills = append(s.Document.Skills, skill)
	return nil
}

// AddSkillsBulk splits a comma separated list, skipping blanks and skills
// already present. It returns the skills actually added.
func (w *Wizard) AddSkillsBulk(s *domain.Session, list string) []string {
	var added []string
	for _, part := range strings.Split(list, ",") {
		skill := strings.TrimSpace(part)
		if skill == "" || hasSkill(s.Document.Skills, skill) {
			continue
		}
		s.Document.Skills = append(s.Document.Skills, skill)
		added = append(added, skill)
	}
	return added
}

func hasSkill(skills []string, skill string) bool {
	for _, s := range skills {
		if s == skill {
			return true
		}
	}
	return false
}

// Section names accepted by Add and Remove.
const (
	SectionExperience     = "experience"
	SectionEducation      = "education"
	SectionSkills         = "skills"
	SectionProjects       = "projects"
	SectionCertifications = "certifications"
	SectionLanguages      = "languages"
)

// Remove deletes the entry at index from the named section.
func (w *Wizard) Remove(s *domain.Session, section string, index int) error {
	d := &s.Document
	var n int
	switch section {
	case SectionExperience:
		n = len(d.Experience)
	case SectionEducation:
		n = len(d.Education)
	case SectionSkills:
		n = len(d.Skills)
	case SectionProjects:
		n = len(d.Projects)
	case SectionCertifications:
		n = len(d.Certifications)
	case SectionLanguages:
		n = len(d.Languages)
	default:
		return errors.Wrap(ErrUnknownSection, section)
	}
	if index < 0 || index >= n {
		return errors.Wrapf(ErrIndexOutOfRange, "%s[%d]", section, index)
	}
	switch section {
	case SectionExperience:
		d.Experience = removeAt(d.Experience, index)
	case SectionEducation:
		d.Education = removeAt(d.Education, index)
	case SectionSkills:
		d.Skills = removeAt(d.Skills, index)
	case SectionProjects:
		d.Projects = removeAt(d.Projects, index)
	case SectionCertifications:
		d.Certifications = removeAt(d.Certifications, index)
	case SectionLanguages:
		d.Languages = removeAt(d.Languages, index)
	}
	return nil
}

func removeAt[T any](items []T, i int) []T {
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...)
}

// Progress is what the Export step shows before saving.
type Progress struct {
	Step       int               `json:"step"`
	StepName   string            `json:"step_name"`
	Completion float64           `json:"completion"`
	Checklist  []model.CheckItem `json:"checklist"`
}

func (w *Wizard) Progress(s *domain.Session) Progress {
	name := ""
	if s.Step >= 1 && s.Step <= len(domain.StepNames) {
		name = domain.StepNames[s.Step-1]
	}
	return Progress{
		Step:       s.Step,
		StepName:   name,
		Completion: model.Completion(s.Document),
		Checklist:  model.Checklist(s.Document),
	}
}

// LoadSample replaces the document with the built-in example.
func (w *Wizard) LoadSample(s *domain.Session) {
	s.Document = model.Sample()
}

// Restore replaces the document with a stored one. name is the snapshot or
// backup file name and is ignored for the remote and sample sources.
func (w *Wizard) Restore(ctx context.Context, s *domain.Session, source Source, name string) error {
	var (
		doc model.Document
		err error
	)
	uid := s.UserID.String()
	switch source {
	case SourceSnapshot:
		doc, err = w.store.Load(uid, name)
	case SourceBackup:
		doc, err = w.store.LoadBackup(uid, name)
	case SourceRemote:
		doc, err = w.store.Fetch(ctx, uid)
	case SourceSample:
		doc = model.Sample()
	default:
		return errors.Errorf("unknown restore source %q", source)
	}
	if err != nil {
		return errors.Wrapf(err, "restore from %s", source)
	}
	if err := DocumentValidator(doc); err != nil {
		return err
	}
	s.Document = doc
	slog.Info("document restored", "session_id", s.ID, "source", source, "name", name)
	return nil
}

// AttachProfilePicture checks and stores an uploaded image, then points the
// document at it. Objects are named profile_<upload time>.
func (w *Wizard) AttachProfilePicture(ctx context.Context, s *domain.Session, filename string, r io.Reader, size int64) (string, error) {
	ext, err := domain.CheckImage(filename, size)
	if err != nil {
		return "", err
	}
	base := "profile_" + w.now().UTC().Format("20060102_150405")
	ref, err := w.images.Put(ctx, s.UserID.String(), base, ext, r, size)
	if err != nil {
		return "", errors.Wrap(err, "store profile picture")
	}
	s.Document.PersonalInfo.ProfilePic = ref
	return ref, nil
}

// Save persists the session document. A *storage.SaveError comes back
// together with the snapshot path when only secondary targets failed.
func (w *Wizard) Save(ctx context.Context, s *domain.Session) (string, error) {
	return w.store.Save(ctx, s.UserID.String(), s.Document)
}

func (w *Wizard) Snapshots(userID uuid.UUID) ([]string, error) {
	return w.store.List(userID.String())
}

func (w *Wizard) Backups(userID uuid.UUID) ([]string, error) {
	return w.store.ListBackups(userID.String())
}

func (w *Wizard) Snapshot(userID uuid.UUID, name string) (model.Document, error) {
	return w.store.Load(userID.String(), name)
}
