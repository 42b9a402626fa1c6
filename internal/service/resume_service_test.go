package service

import (
	"career_compass_backend/internal/model"
	"career_compass_backend/internal/util"
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeAssessmentStore struct {
	findErr error
	stored  *model.Assessment
	upserts int
	updates int
}

func (f *fakeAssessmentStore) FindByUserID(userID uint) (*model.Assessment, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if f.stored == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.stored, nil
}

func (f *fakeAssessmentStore) Upsert(a *model.Assessment) error {
	f.upserts++
	f.stored = a
	return nil
}

func (f *fakeAssessmentStore) Update(a *model.Assessment) error {
	f.updates++
	f.stored = a
	return nil
}

const resumeLikeText = `John Doe
john.doe@example.com | (555) 123-4567
Education: B.Tech Computer Science, Pune University
Work Experience: Backend developer at Acme
Skills: Go, SQL, Docker
Projects: github.com/johndoe/sample`

func TestClassifyResumeAcceptsResumeText(t *testing.T) {
	score := ClassifyResume(resumeLikeText)
	assert.GreaterOrEqual(t, score, classifierThreshold)
}

func TestClassifyResumeRejectsProse(t *testing.T) {
	text := "Once upon a time there was a little prince who lived on a planet scarcely bigger than himself."
	score := ClassifyResume(text)
	assert.Less(t, score, classifierThreshold)
}

func TestClassifyResumeBoundary(t *testing.T) {
	// 两个特征：低于阈值
	two := "education details and skills list"
	assert.Equal(t, 2, ClassifyResume(two))

	// 三个特征：恰好到达阈值
	three := "education details, skills list and projects overview"
	assert.Equal(t, 3, ClassifyResume(three))
}

func TestClassifyResumeCountsContactPatterns(t *testing.T) {
	assert.Equal(t, 1, ClassifyResume("reach me at someone@mail.com"))
	assert.Equal(t, 1, ClassifyResume("call 555-123-4567 anytime"))
	assert.Equal(t, 0, ClassifyResume("nothing to see here"))
}

func TestProcessUploadRejectsNonPDF(t *testing.T) {
	s := &ResumeService{}
	_, _, err := s.ProcessUpload(context.Background(), 1, "resume.docx", []byte("PK\x03\x04 docx bytes"))
	assert.ErrorIs(t, err, util.ErrInvalidFileType)
}

func TestProcessUploadRejectsCorruptPDF(t *testing.T) {
	s := &ResumeService{}
	_, _, err := s.ProcessUpload(context.Background(), 1, "resume.pdf", []byte("%PDF-1.7 but truncated"))
	assert.ErrorIs(t, err, util.ErrEmptyExtraction)
}

func TestSaveProfilePropagatesReadFailure(t *testing.T) {
	// 瞬时读错误不能被当成"无记录"，否则会用空画像覆盖已有数据
	store := &fakeAssessmentStore{findErr: errors.New("connection refused")}
	s := &ResumeService{AssessmentRepo: store}

	_, err := s.SaveProfile(1, "Go, SQL", "systems")
	require.Error(t, err)
	assert.Equal(t, 0, store.upserts)
	assert.Equal(t, 0, store.updates)
}

func TestSaveProfileKeepsResumeOnUpdate(t *testing.T) {
	store := &fakeAssessmentStore{stored: &model.Assessment{UserID: 1, ResumeText: "resume body"}}
	s := &ResumeService{AssessmentRepo: store}

	out, err := s.SaveProfile(1, "Go, SQL", "systems")
	require.NoError(t, err)
	assert.Equal(t, "resume body", out.ResumeText)
	assert.Equal(t, "Go, SQL", out.Skills)
	assert.Equal(t, 1, store.updates)
	assert.Equal(t, 0, store.upserts)
}

func TestSaveProfileCreatesWhenMissing(t *testing.T) {
	store := &fakeAssessmentStore{}
	s := &ResumeService{AssessmentRepo: store}

	out, err := s.SaveProfile(1, "Go, SQL", "systems")
	require.NoError(t, err)
	assert.Equal(t, "systems", out.Interests)
	assert.Equal(t, 1, store.upserts)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 10))
	assert.Equal(t, "ab", truncate("abcdef", 2))
	assert.Len(t, truncate(strings.Repeat("x", 5000), 2000), 2000)
}

func TestTruncateKeepsRuneBoundary(t *testing.T) {
	s := strings.Repeat("测", 10) // 每字符3字节
	cut := truncate(s, 10)
	assert.True(t, utf8.ValidString(cut))
	assert.Len(t, cut, 9)
}
