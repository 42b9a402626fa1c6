package service

import (
	"career_compass_backend/internal/ai"
	"career_compass_backend/internal/model"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeWizardAI struct {
	test    *ai.PsychometricTestOutput
	testErr error
	eval    *ai.EvaluationOutput
	evalErr error
}

func (f *fakeWizardAI) GeneratePsychometricTest(ctx context.Context, segment string, details ai.SegmentDetails) (*ai.PsychometricTestOutput, error) {
	return f.test, f.testErr
}

func (f *fakeWizardAI) EvaluatePsychometricTest(ctx context.Context, segment string, details ai.SegmentDetails, answers []ai.TestAnswer, reflection string) (*ai.EvaluationOutput, error) {
	return f.eval, f.evalErr
}

type fakeSessionStore struct {
	session   *model.PsychometricSession
	result    *model.PsychometricResult
	updateErr error
}

func (f *fakeSessionStore) CreateSession(s *model.PsychometricSession) error {
	if s.ID == "" {
		s.ID = "sess-1"
	}
	f.session = s
	return nil
}

func (f *fakeSessionStore) FindSession(id string) (*model.PsychometricSession, error) {
	if f.session == nil || f.session.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return f.session, nil
}

func (f *fakeSessionStore) FindLatestSessionByUser(userID uint) (*model.PsychometricSession, error) {
	if f.session == nil || f.session.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return f.session, nil
}

func (f *fakeSessionStore) UpdateSession(s *model.PsychometricSession) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.session = s
	return nil
}

func (f *fakeSessionStore) SaveResult(r *model.PsychometricResult) error {
	f.result = r
	return nil
}

func (f *fakeSessionStore) FindResultByUserID(userID uint) (*model.PsychometricResult, error) {
	if f.result == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.result, nil
}

func wizardPaper() []ai.TestQuestion {
	qs := make([]ai.TestQuestion, 20)
	for i := range qs {
		qs[i] = ai.TestQuestion{Question: fmt.Sprintf("q%d", i+1)}
	}
	return qs
}

func wizardAnswers() []ai.TestAnswer {
	as := make([]ai.TestAnswer, 20)
	for i := range as {
		as[i] = ai.TestAnswer{Question: fmt.Sprintf("q%d", i+1), Answer: "yes"}
	}
	return as
}

// 80词，落在50-300的区间内
func reflectionFixture() string {
	return strings.TrimSpace(strings.Repeat("steady effort ", 40))
}

func reflectionSession(state model.SessionState) *model.PsychometricSession {
	details, _ := json.Marshal(ai.SegmentDetails{FieldOfStudy: "CS"})
	answers, _ := json.Marshal(wizardAnswers())
	return &model.PsychometricSession{
		UUIDBase: model.UUIDBase{ID: "sess-1"},
		UserID:   1,
		State:    state,
		Segment:  model.SegmentCollege,
		Details:  details,
		Answers:  answers,
	}
}

func TestSubmitReflectionEvaluationFailureRollsBack(t *testing.T) {
	store := &fakeSessionStore{session: reflectionSession(model.StateCollectingReflection)}
	svc := NewAssessmentService(&fakeWizardAI{evalErr: errors.New("model unavailable")}, store)

	_, err := svc.SubmitReflection(context.Background(), 1, "sess-1", reflectionFixture())
	require.Error(t, err)

	// 回到自述环节，已作答内容原样保留
	assert.Equal(t, model.StateCollectingReflection, store.session.State)
	var kept []ai.TestAnswer
	require.NoError(t, json.Unmarshal(store.session.Answers, &kept))
	assert.Len(t, kept, 20)
	assert.Nil(t, store.result)
}

func TestSubmitReflectionRetriesStrandedEvaluating(t *testing.T) {
	// 进程在评估途中终止会把会话留在evaluating，重提自述应能直接重试
	store := &fakeSessionStore{session: reflectionSession(model.StateEvaluating)}
	svc := NewAssessmentService(&fakeWizardAI{eval: &ai.EvaluationOutput{
		SummaryReport:  "report",
		CareerAdvisory: "advisory",
		ExpertAdvice:   "advice",
	}}, store)

	session, err := svc.SubmitReflection(context.Background(), 1, "sess-1", reflectionFixture())
	require.NoError(t, err)
	assert.Equal(t, model.StateDone, session.State)
	require.NotNil(t, store.result)
	assert.Equal(t, "report", store.result.SummaryReport)
}

func TestSubmitDetailsRetriesStrandedGeneratingTest(t *testing.T) {
	store := &fakeSessionStore{session: &model.PsychometricSession{
		UUIDBase: model.UUIDBase{ID: "sess-1"},
		UserID:   1,
		State:    model.StateGeneratingTest,
		Segment:  model.SegmentKid,
	}}
	svc := NewAssessmentService(&fakeWizardAI{test: &ai.PsychometricTestOutput{Questions: wizardPaper()}}, store)

	session, err := svc.SubmitDetails(context.Background(), 1, "sess-1", ai.SegmentDetails{Grade: "5th"})
	require.NoError(t, err)
	assert.Equal(t, model.StateAnsweringTest, session.State)

	var questions []ai.TestQuestion
	require.NoError(t, json.Unmarshal(session.Questions, &questions))
	assert.Len(t, questions, 20)
}

func TestSubmitDetailsGenerationFailureRollsBack(t *testing.T) {
	store := &fakeSessionStore{session: &model.PsychometricSession{
		UUIDBase: model.UUIDBase{ID: "sess-1"},
		UserID:   1,
		State:    model.StateCollectingDetails,
		Segment:  model.SegmentKid,
	}}
	svc := NewAssessmentService(&fakeWizardAI{testErr: errors.New("model unavailable")}, store)

	_, err := svc.SubmitDetails(context.Background(), 1, "sess-1", ai.SegmentDetails{Grade: "5th"})
	require.Error(t, err)

	// 回到信息收集环节，已填信息保留
	assert.Equal(t, model.StateCollectingDetails, store.session.State)
	assert.NotEmpty(t, store.session.Details)
}

func TestValidateDetailsPerSegment(t *testing.T) {
	tests := []struct {
		name    string
		segment model.UserSegment
		details ai.SegmentDetails
		wantErr bool
	}{
		{"kid缺年级", model.SegmentKid, ai.SegmentDetails{}, true},
		{"kid完整", model.SegmentKid, ai.SegmentDetails{Grade: "5th"}, false},
		{"school缺年级", model.SegmentSchoolStudent, ai.SegmentDetails{Location: "Delhi"}, true},
		{"school完整", model.SegmentSchoolStudent, ai.SegmentDetails{Grade: "11th", Location: "Delhi"}, false},
		{"college缺专业", model.SegmentCollege, ai.SegmentDetails{}, true},
		{"college完整", model.SegmentCollege, ai.SegmentDetails{FieldOfStudy: "Mechanical Engineering"}, false},
		{"professional缺行业", model.SegmentProfessional, ai.SegmentDetails{Experience: "8", Role: "Manager"}, true},
		{"professional完整", model.SegmentProfessional, ai.SegmentDetails{Experience: "8", Role: "Manager", Industry: "Finance"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateDetails(tt.segment, tt.details)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
