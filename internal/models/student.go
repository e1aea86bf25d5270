package models

import "math"

// IDType tags which document a student was registered with.
type IDType string

const (
	IDTypeEnrollment IDType = "ENROLLMENT_NUMBER"
	IDTypeNationalID IDType = "NATIONAL_ID"
)

func (t IDType) Valid() bool {
	return t == IDTypeEnrollment || t == IDTypeNationalID
}

// Stage identifies one of the three grading stages of a subject.
type Stage string

const (
	Stage1 Stage = "STAGE_1"
	Stage2 Stage = "STAGE_2"
	Stage3 Stage = "STAGE_3"
)

// Stages lists all stages in grading order.
var Stages = []Stage{Stage1, Stage2, Stage3}

// StageWeights are the fixed weights used to compute a subject average.
var StageWeights = map[Stage]float64{
	Stage1: 0.3,
	Stage2: 0.3,
	Stage3: 0.4,
}

func (s Stage) Valid() bool {
	_, ok := StageWeights[s]
	return ok
}

// Subject statuses derived from the average.
const (
	StatusInProgress = "IN_PROGRESS"
	StatusApproved   = "APPROVED"
	StatusFailed     = "FAILED"
)

// PassingAverage is the minimum average for an APPROVED status.
const PassingAverage = 7.0

type Subject struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	RegistrationDate string             `json:"registration_date"`
	Grades           map[Stage]*float64 `json:"grades"`
}

type Student struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	IDType           IDType    `json:"id_type"`
	Identifier       string    `json:"identifier"`
	RegistrationDate string    `json:"registration_date"`
	Subjects         []Subject `json:"subjects"`
}

// NewGrades returns a grade map with all three stages present and ungraded.
func NewGrades() map[Stage]*float64 {
	return map[Stage]*float64{Stage1: nil, Stage2: nil, Stage3: nil}
}

// EnsureGradeKeys restores any stage key missing from a loaded grade map.
func (s *Subject) EnsureGradeKeys() {
	if s.Grades == nil {
		s.Grades = NewGrades()
		return
	}
	for _, st := range Stages {
		if _, ok := s.Grades[st]; !ok {
			s.Grades[st] = nil
		}
	}
}

// Average returns the weighted average of the three stage grades, rounded to
// two decimals. The second result is false while any stage is still ungraded.
func (s *Subject) Average() (float64, bool) {
	sum := 0.0
	for _, st := range Stages {
		g := s.Grades[st]
		if g == nil {
			return 0, false
		}
		sum += *g * StageWeights[st]
	}
	return Round2(sum), true
}

// Status derives the subject status from the average. A subject with any
// ungraded stage is IN_PROGRESS.
func (s *Subject) Status() string {
	avg, ok := s.Average()
	if !ok {
		return StatusInProgress
	}
	if avg >= PassingAverage {
		return StatusApproved
	}
	return StatusFailed
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// SubjectOut is the API shape of a subject, with the derived fields attached.
// Average and Status are computed at read time and never persisted.
type SubjectOut struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	RegistrationDate string             `json:"registration_date"`
	Grades           map[Stage]*float64 `json:"grades"`
	Average          *float64           `json:"average"`
	Status           string             `json:"status"`
}

// StudentOut is the API shape of a student.
type StudentOut struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	IDType           IDType       `json:"id_type"`
	Identifier       string       `json:"identifier"`
	RegistrationDate string       `json:"registration_date"`
	Subjects         []SubjectOut `json:"subjects"`
}

func (s *Subject) Out() SubjectOut {
	out := SubjectOut{
		ID:               s.ID,
		Name:             s.Name,
		RegistrationDate: s.RegistrationDate,
		Grades:           s.Grades,
		Status:           s.Status(),
	}
	if avg, ok := s.Average(); ok {
		out.Average = &avg
	}
	return out
}

func (s *Student) Out() StudentOut {
	subjects := make([]SubjectOut, 0, len(s.Subjects))
	for i := range s.Subjects {
		subjects = append(subjects, s.Subjects[i].Out())
	}
	return StudentOut{
		ID:               s.ID,
		Name:             s.Name,
		IDType:           s.IDType,
		Identifier:       s.Identifier,
		RegistrationDate: s.RegistrationDate,
		Subjects:         subjects,
	}
}
