package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func gradePtr(v float64) *float64 { return &v }

func TestSubjectAverageAndStatus(t *testing.T) {
	sub := Subject{Grades: NewGrades()}

	avg, ok := sub.Average()
	assert.False(t, ok)
	assert.Zero(t, avg)
	assert.Equal(t, StatusInProgress, sub.Status())

	sub.Grades[Stage1] = gradePtr(6)
	sub.Grades[Stage2] = gradePtr(7)
	_, ok = sub.Average()
	assert.False(t, ok, "average undefined while a stage is ungraded")
	assert.Equal(t, StatusInProgress, sub.Status())

	sub.Grades[Stage3] = gradePtr(8)
	avg, ok = sub.Average()
	assert.True(t, ok)
	assert.InDelta(t, 7.1, avg, 1e-9)
	assert.Equal(t, StatusApproved, sub.Status())
}

func TestSubjectStatusFailedBelowCutoff(t *testing.T) {
	sub := Subject{Grades: map[Stage]*float64{
		Stage1: gradePtr(5),
		Stage2: gradePtr(6),
		Stage3: gradePtr(7),
	}}
	avg, ok := sub.Average()
	assert.True(t, ok)
	assert.InDelta(t, 6.1, avg, 1e-9)
	assert.Equal(t, StatusFailed, sub.Status())
}

func TestSubjectStatusApprovedAtCutoff(t *testing.T) {
	sub := Subject{Grades: map[Stage]*float64{
		Stage1: gradePtr(7),
		Stage2: gradePtr(7),
		Stage3: gradePtr(7),
	}}
	avg, ok := sub.Average()
	assert.True(t, ok)
	assert.InDelta(t, 7.0, avg, 1e-9)
	assert.Equal(t, StatusApproved, sub.Status())
}

func TestAverageRoundsToTwoDecimals(t *testing.T) {
	sub := Subject{Grades: map[Stage]*float64{
		Stage1: gradePtr(5.55),
		Stage2: gradePtr(6.66),
		Stage3: gradePtr(7.77),
	}}
	avg, ok := sub.Average()
	assert.True(t, ok)
	// 0.3*5.55 + 0.3*6.66 + 0.4*7.77 = 6.771
	assert.InDelta(t, 6.77, avg, 1e-9)
}

func TestEnsureGradeKeys(t *testing.T) {
	sub := Subject{}
	sub.EnsureGradeKeys()
	assert.Len(t, sub.Grades, 3)

	sub = Subject{Grades: map[Stage]*float64{Stage2: gradePtr(4)}}
	sub.EnsureGradeKeys()
	assert.Len(t, sub.Grades, 3)
	assert.Nil(t, sub.Grades[Stage1])
	assert.NotNil(t, sub.Grades[Stage2])
}

func TestSubjectOutCarriesDerivedFields(t *testing.T) {
	sub := Subject{ID: "s1", Name: "Math", Grades: NewGrades()}
	out := sub.Out()
	assert.Nil(t, out.Average)
	assert.Equal(t, StatusInProgress, out.Status)

	for _, st := range Stages {
		sub.Grades[st] = gradePtr(9)
	}
	out = sub.Out()
	assert.NotNil(t, out.Average)
	assert.InDelta(t, 9.0, *out.Average, 1e-9)
	assert.Equal(t, StatusApproved, out.Status)
}
