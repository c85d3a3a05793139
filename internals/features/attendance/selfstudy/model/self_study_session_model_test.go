package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tresorbana/school-sub000/internals/helpers/errs"
)

func session(total int) *SelfStudySessionModel {
	return &SelfStudySessionModel{
		SelfStudySessionID:              uuid.New(),
		SelfStudySessionTotalStudents:   total,
		SelfStudySessionPresentStudents: total,
	}
}

func TestApplySubmission(t *testing.T) {
	now := time.Date(2026, 1, 5, 7, 30, 0, 0, time.UTC)
	s := session(20)

	note := "sick"
	absent := []AbsentStudent{
		{StudentID: uuid.New()},
		{StudentID: uuid.New(), Notes: &note},
	}

	require.NoError(t, s.ApplySubmission(absent, now))
	assert.Equal(t, 18, s.SelfStudySessionPresentStudents)
	require.NotNil(t, s.SelfStudySessionSubmittedAt)
	assert.Equal(t, now, *s.SelfStudySessionSubmittedAt)

	got, err := s.AbsentList()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, absent, got)
}

// present + |absent| == total holds for every submission size.
func TestApplySubmissionInvariant(t *testing.T) {
	now := time.Now()
	for n := 0; n <= 20; n++ {
		s := session(20)
		absent := make([]AbsentStudent, n)
		for i := range absent {
			absent[i] = AbsentStudent{StudentID: uuid.New()}
		}
		require.NoError(t, s.ApplySubmission(absent, now))
		assert.Equal(t, 20-n, s.SelfStudySessionPresentStudents)
	}
}

func TestApplySubmissionLastWriteWins(t *testing.T) {
	first := time.Date(2026, 1, 5, 7, 30, 0, 0, time.UTC)
	second := first.Add(10 * time.Minute)
	s := session(10)

	require.NoError(t, s.ApplySubmission([]AbsentStudent{{StudentID: uuid.New()}}, first))
	assert.Equal(t, 9, s.SelfStudySessionPresentStudents)

	// second submit overwrites the list; submitted_at keeps the first stamp
	require.NoError(t, s.ApplySubmission(nil, second))
	assert.Equal(t, 10, s.SelfStudySessionPresentStudents)
	assert.Equal(t, first, *s.SelfStudySessionSubmittedAt)
}

func TestApplySubmissionRejectsBadInput(t *testing.T) {
	now := time.Now()

	t.Run("absent exceeds total", func(t *testing.T) {
		s := session(1)
		err := s.ApplySubmission([]AbsentStudent{{StudentID: uuid.New()}, {StudentID: uuid.New()}}, now)
		require.Error(t, err)
		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	})

	t.Run("duplicate student", func(t *testing.T) {
		s := session(5)
		id := uuid.New()
		err := s.ApplySubmission([]AbsentStudent{{StudentID: id}, {StudentID: id}}, now)
		require.Error(t, err)
		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	})
}
