package service

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/brightpath-academy/institute-api/internal/dto"
	"github.com/brightpath-academy/institute-api/internal/models"
	appErrors "github.com/brightpath-academy/institute-api/pkg/errors"
	"github.com/brightpath-academy/institute-api/pkg/storage"
)

type mockSyllabusCourses struct {
	course     *models.Course
	findErr    error
	pathSet    *string
	pathSetFor string
}

func (m *mockSyllabusCourses) FindByID(ctx context.Context, id string) (*models.Course, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.course, nil
}

func (m *mockSyllabusCourses) FindBySlug(ctx context.Context, slug string) (*models.Course, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.course, nil
}

func (m *mockSyllabusCourses) UpdateSyllabusPath(ctx context.Context, id string, path *string) error {
	m.pathSetFor = id
	m.pathSet = path
	return nil
}

type mockSyllabusStorage struct {
	saved   map[string][]byte
	deleted []string
}

func (m *mockSyllabusStorage) SaveStream(filename string, r io.Reader) (string, error) {
	if m.saved == nil {
		m.saved = make(map[string][]byte)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.saved[filename] = data
	return filename, nil
}

func (m *mockSyllabusStorage) Open(filename string) (*os.File, error) {
	f, err := os.CreateTemp(os.TempDir(), "syllabus-test-*")
	if err != nil {
		return nil, err
	}
	_, _ = f.Write(m.saved[filename])
	_, _ = f.Seek(0, io.SeekStart)
	return f, nil
}

func (m *mockSyllabusStorage) Delete(filename string) error {
	m.deleted = append(m.deleted, filename)
	return nil
}

func newSyllabusService(courses *mockSyllabusCourses, leads *mockLeadCapturer, store *mockSyllabusStorage) *SyllabusService {
	signer := storage.NewSignedURLSigner("syllabus-secret", time.Hour)
	return NewSyllabusService(courses, leads, store, signer, validator.New(), zap.NewNop(), SyllabusConfig{
		APIPrefix:        "/api/v1",
		MaxFileSizeBytes: 1024,
	})
}

func activeCourseWithSyllabus() *models.Course {
	path := "c1/20260101_000000_syllabus.pdf"
	return &models.Course{
		ID:           "c1",
		Title:        "Data Engineering",
		Slug:         "data-engineering",
		IsActive:     true,
		SyllabusPath: &path,
	}
}

func TestSyllabusServiceUploadReplacesPrevious(t *testing.T) {
	courses := &mockSyllabusCourses{course: activeCourseWithSyllabus()}
	store := &mockSyllabusStorage{}
	svc := newSyllabusService(courses, &mockLeadCapturer{}, store)

	err := svc.Upload(context.Background(), "c1", "syllabus.pdf", 100, bytes.NewReader(make([]byte, 100)))
	require.NoError(t, err)
	require.NotNil(t, courses.pathSet)
	assert.Equal(t, "c1", courses.pathSetFor)
	assert.True(t, strings.HasPrefix(*courses.pathSet, "c1/"))
	require.Len(t, store.deleted, 1)
	assert.Equal(t, "c1/20260101_000000_syllabus.pdf", store.deleted[0])
}

func TestSyllabusServiceUploadRejectsNonPDF(t *testing.T) {
	svc := newSyllabusService(&mockSyllabusCourses{}, &mockLeadCapturer{}, &mockSyllabusStorage{})

	err := svc.Upload(context.Background(), "c1", "syllabus.docx", 100, bytes.NewReader(nil))
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestSyllabusServiceUploadRejectsOversizedFile(t *testing.T) {
	svc := newSyllabusService(&mockSyllabusCourses{}, &mockLeadCapturer{}, &mockSyllabusStorage{})

	err := svc.Upload(context.Background(), "c1", "syllabus.pdf", 5000, bytes.NewReader(nil))
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrPayloadTooLarge.Code, appErr.Code)
}

func TestSyllabusServiceUploadRejectsOverlongStream(t *testing.T) {
	courses := &mockSyllabusCourses{course: activeCourseWithSyllabus()}
	store := &mockSyllabusStorage{}
	svc := newSyllabusService(courses, &mockLeadCapturer{}, store)

	// Declared size fits, but the stream itself runs past the limit.
	err := svc.Upload(context.Background(), "c1", "syllabus.pdf", 100, bytes.NewReader(make([]byte, 2000)))
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrPayloadTooLarge.Code, appErr.Code)

	// The partial file is removed and the course record untouched.
	require.Len(t, store.deleted, 1)
	assert.True(t, strings.HasPrefix(store.deleted[0], "c1/"))
	assert.Nil(t, courses.pathSet)
}

func TestSyllabusServiceRequestDownloadCapturesLead(t *testing.T) {
	courses := &mockSyllabusCourses{course: activeCourseWithSyllabus()}
	leads := &mockLeadCapturer{}
	svc := newSyllabusService(courses, leads, &mockSyllabusStorage{})

	resp, err := svc.RequestDownload(context.Background(), "data-engineering", dto.SyllabusRequest{
		Name:  "Asha",
		Email: "asha@example.com",
		Phone: "+911234567890",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.DownloadURL, "/api/v1/downloads/"))

	require.NotNil(t, leads.captured)
	assert.Equal(t, "syllabus_download", leads.captured.Source)
	require.NotNil(t, leads.captured.CourseInterest)
	assert.Equal(t, "Data Engineering", *leads.captured.CourseInterest)
}

func TestSyllabusServiceRequestDownloadNoSyllabus(t *testing.T) {
	course := activeCourseWithSyllabus()
	course.SyllabusPath = nil
	svc := newSyllabusService(&mockSyllabusCourses{course: course}, &mockLeadCapturer{}, &mockSyllabusStorage{})

	_, err := svc.RequestDownload(context.Background(), "data-engineering", dto.SyllabusRequest{
		Name:  "Asha",
		Email: "asha@example.com",
		Phone: "+911234567890",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestSyllabusServiceResolveDownloadRejectsStalePath(t *testing.T) {
	course := activeCourseWithSyllabus()
	signer := storage.NewSignedURLSigner("syllabus-secret", time.Hour)
	token, _, err := signer.Generate(course.ID, "c1/old_syllabus.pdf")
	require.NoError(t, err)

	svc := newSyllabusService(&mockSyllabusCourses{course: course}, &mockLeadCapturer{}, &mockSyllabusStorage{})

	_, err = svc.ResolveDownload(context.Background(), token)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErr.Code)
}

func TestSyllabusServiceResolveDownloadCourseGone(t *testing.T) {
	signer := storage.NewSignedURLSigner("syllabus-secret", time.Hour)
	token, _, err := signer.Generate("c1", "c1/old_syllabus.pdf")
	require.NoError(t, err)

	svc := newSyllabusService(&mockSyllabusCourses{findErr: sql.ErrNoRows}, &mockLeadCapturer{}, &mockSyllabusStorage{})

	_, err = svc.ResolveDownload(context.Background(), token)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}
