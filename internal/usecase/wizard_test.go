package usecase

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"resume-forge/internal/adapter/objectstore"
	"resume-forge/internal/adapter/session"
	"resume-forge/internal/domain"
	"resume-forge/internal/model"
	"resume-forge/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)

func newTestWizard(t *testing.T) (*Wizard, string) {
	t.Helper()
	dir := t.TempDir()
	clock := func() time.Time { return testNow }
	store := storage.New(dir, storage.NewMemoryDocuments(), storage.WithClock(clock))
	w := NewWizard(session.NewMemory(), store, objectstore.NewLocal(dir)).WithClock(clock)
	return w, dir
}

func TestPersonalInfoAdvancesStep(t *testing.T) {
	ctx := context.Background()
	w, _ := newTestWizard(t)
	user := uuid.New()

	s, err := w.Start(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, domain.StepPersonalInfo, s.Step)

	err = w.SavePersonalInfo(s, model.PersonalInfo{FullName: "Jane Doe", Email: "jane@x", Phone: "+15550001111"})
	assert.Contains(t, fields(t, err), "email")
	assert.Equal(t, domain.StepPersonalInfo, s.Step)
	assert.Empty(t, s.Document.PersonalInfo.FullName)

	require.NoError(t, w.SavePersonalInfo(s, model.PersonalInfo{FullName: " Jane Doe ", Email: "jane@x.com", Phone: "+15550001111"}))
	assert.Equal(t, domain.StepExperience, s.Step)
	assert.Equal(t, "Jane Doe", s.Document.PersonalInfo.FullName)
	require.NoError(t, w.Commit(ctx, s))

	reopened, err := w.Open(ctx, user, s.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StepExperience, reopened.Step)
	assert.Equal(t, "jane@x.com", reopened.Document.PersonalInfo.Email)
}

func TestOpenHidesOtherUsersSessions(t *testing.T) {
	ctx := context.Background()
	w, _ := newTestWizard(t)
	s, err := w.Start(ctx, uuid.New())
	require.NoError(t, err)

	_, err = w.Open(ctx, uuid.New(), s.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, w.Discard(ctx, uuid.New(), s.ID), domain.ErrNotFound)
	require.NoError(t, w.Discard(ctx, s.UserID, s.ID))
	_, err = w.Open(ctx, s.UserID, s.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNavigate(t *testing.T) {
	w, _ := newTestWizard(t)
	s := domain.NewSession(uuid.New(), testNow)

	require.NoError(t, w.Navigate(s, domain.StepExport))
	assert.Equal(t, 8, s.Step)
	for _, step := range []int{0, 9, -1} {
		assert.ErrorIs(t, w.Navigate(s, step), ErrInvalidStep)
	}
	assert.Equal(t, 8, s.Step)
}

func TestAddEntries(t *testing.T) {
	w, _ := newTestWizard(t)
	s := domain.NewSession(uuid.New(), testNow)

	require.NoError(t, w.AddExperience(s, model.Experience{Company: "Acme", Position: "Engineer", StartDate: "2022-01"}))
	assert.Equal(t, "Present", s.Document.Experience[0].EndDate)

	err := w.AddExperience(s, model.Experience{Company: "Acme", Position: "Engineer", StartDate: "Jan 2022"})
	assert.Contains(t, fields(t, err), "start_date")
	assert.Len(t, s.Document.Experience, 1)

	require.NoError(t, w.AddEducation(s, model.Education{Institution: "MIT", Degree: "BSc", Year: "2020"}))
	require.NoError(t, w.AddProject(s, model.Project{Name: "forge", Technologies: "Go", URL: "https://github.com/x/forge"}))
	require.NoError(t, w.AddCertification(s, model.Certification{Name: "CKA", Issuer: "CNCF", Date: "2023-06"}))
	require.NoError(t, w.AddLanguage(s, model.Language{Name: "English"}))
	assert.Equal(t, "Native", s.Document.Languages[0].Proficiency)
}

func TestSkills(t *testing.T) {
	w, _ := newTestWizard(t)
	s := domain.NewSession(uuid.New(), testNow)

	require.NoError(t, w.AddSkill(s, " Go "))
	assert.ErrorIs(t, w.AddSkill(s, "Go"), ErrDuplicateSkill)
	assert.Contains(t, fields(t, w.AddSkill(s, "  ")), "skill")

	added := w.AddSkillsBulk(s, "Python, Go, , SQL,Python")
	assert.Equal(t, []string{"Python", "SQL"}, added)
	assert.Equal(t, []string{"Go", "Python", "SQL"}, s.Document.Skills)
}

func TestRemove(t *testing.T) {
	w, _ := newTestWizard(t)
	s := domain.NewSession(uuid.New(), testNow)
	s.Document = model.Sample()

	require.NoError(t, w.Remove(s, SectionSkills, 1))
	assert.Equal(t, []string{"Python", "React", "Node.js", "SQL"}, s.Document.Skills)

	require.NoError(t, w.Remove(s, SectionExperience, 0))
	assert.Empty(t, s.Document.Experience)
	assert.NotNil(t, s.Document.Experience)

	assert.ErrorIs(t, w.Remove(s, SectionExperience, 0), ErrIndexOutOfRange)
	assert.ErrorIs(t, w.Remove(s, SectionLanguages, -1), ErrIndexOutOfRange)
	assert.ErrorIs(t, w.Remove(s, "hobbies", 0), ErrUnknownSection)
}

func TestProgress(t *testing.T) {
	w, _ := newTestWizard(t)
	s := domain.NewSession(uuid.New(), testNow)
	w.LoadSample(s)
	require.NoError(t, w.Navigate(s, domain.StepExport))

	p := w.Progress(s)
	assert.Equal(t, "Export", p.StepName)
	assert.Equal(t, 100.0, p.Completion)
	assert.Len(t, p.Checklist, 4)
}

func TestSaveAndRestore(t *testing.T) {
	ctx := context.Background()
	w, _ := newTestWizard(t)
	s := domain.NewSession(uuid.New(), testNow)
	w.LoadSample(s)

	path, err := w.Save(ctx, s)
	require.NoError(t, err)
	name := filepath.Base(path)

	snaps, err := w.Snapshots(s.UserID)
	require.NoError(t, err)
	assert.Equal(t, []string{name}, snaps)
	backups, err := w.Backups(s.UserID)
	require.NoError(t, err)
	require.Len(t, backups, 1)

	for _, tc := range []struct {
		source Source
		name   string
	}{
		{SourceSnapshot, name},
		{SourceBackup, backups[0]},
		{SourceRemote, ""},
		{SourceSample, ""},
	} {
		t.Run(string(tc.source), func(t *testing.T) {
			s.Document = model.NewDocument()
			require.NoError(t, w.Restore(ctx, s, tc.source, tc.name))
			assert.Equal(t, model.Sample(), s.Document)
		})
	}

	s.Document = model.NewDocument()
	err = w.Restore(ctx, s, SourceSnapshot, "resume_data_19990101_000000.json")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.Equal(t, model.NewDocument(), s.Document)
}

func TestRestoreRejectsInvalidSnapshot(t *testing.T) {
	ctx := context.Background()
	w, _ := newTestWizard(t)
	s := domain.NewSession(uuid.New(), testNow)
	w.LoadSample(s)
	path, err := w.Save(ctx, s)
	require.NoError(t, err)

	tampered := model.Sample()
	tampered.PersonalInfo.Email = "not-an-email"
	tampered.Education[0].GPA = "9.9"
	raw, err := model.Encode(tampered)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	s.Document = model.NewDocument()
	err = w.Restore(ctx, s, SourceSnapshot, filepath.Base(path))
	got := fields(t, err)
	assert.Contains(t, got, "personal_info.email")
	assert.Contains(t, got, "education[0].gpa")
	assert.Equal(t, model.NewDocument(), s.Document)
}

func TestAttachProfilePicture(t *testing.T) {
	ctx := context.Background()
	w, dir := newTestWizard(t)
	s := domain.NewSession(uuid.New(), testNow)

	_, err := w.AttachProfilePicture(ctx, s, "me.gif", strings.NewReader("GIF89a"), 6)
	assert.ErrorIs(t, err, domain.ErrUnsupportedImage)
	_, err = w.AttachProfilePicture(ctx, s, "me.png", strings.NewReader(""), domain.MaxImageSize+1)
	assert.ErrorIs(t, err, domain.ErrImageTooLarge)
	assert.Empty(t, s.Document.PersonalInfo.ProfilePic)

	ref, err := w.AttachProfilePicture(ctx, s, "Me.PNG", bytes.NewReader([]byte("png-bytes")), 9)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "users", s.UserID.String(), "assets", "profile_20240501_103000.png"), ref)
	assert.Equal(t, ref, s.Document.PersonalInfo.ProfilePic)

	data, err := os.ReadFile(ref)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, w.SavePersonalInfo(s, model.PersonalInfo{FullName: "Jane Doe", Email: "jane@x.com", Phone: "+15550001111"}))
	assert.Equal(t, ref, s.Document.PersonalInfo.ProfilePic)
}
