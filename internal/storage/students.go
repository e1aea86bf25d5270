package storage

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AmarildoSantos1/Sistemas-Notas-Academico/internal/models"
	"github.com/AmarildoSantos1/Sistemas-Notas-Academico/internal/utils"
)

// StudentStore is the durable student collection. Every mutation reloads the
// whole file, applies one change in memory and atomically rewrites the file,
// so each call observes the latest durable state. The mutex serializes the
// load-mutate-save sequence; without it two concurrent writers would race and
// the second save would silently drop the first one's change.
type StudentStore struct {
	path string
	mu   sync.Mutex
}

func NewStudentStore(path string) *StudentStore {
	return &StudentStore{path: path}
}

// StudentPatch carries partial updates. Nil fields are left unchanged, so a
// caller can tell "skip" apart from "set".
type StudentPatch struct {
	Name             *string
	IDType           *models.IDType
	Identifier       *string
	RegistrationDate *string
}

// SubjectPatch carries partial subject updates with the same nil-means-skip
// semantics as StudentPatch.
type SubjectPatch struct {
	Name             *string
	RegistrationDate *string
}

// StudentFilter narrows List results. Zero-valued fields are no-ops and the
// set filters compose with AND.
type StudentFilter struct {
	Name       string // case-insensitive substring
	IDType     models.IDType
	Identifier string
	DateMin    string // inclusive registration date bounds
	DateMax    string
}

func (s *StudentStore) load() ([]models.Student, error) {
	var students []models.Student
	if _, err := LoadJSON(s.path, &students); err != nil {
		return nil, err
	}
	for i := range students {
		if students[i].Subjects == nil {
			students[i].Subjects = []models.Subject{}
		}
		for j := range students[i].Subjects {
			students[i].Subjects[j].EnsureGradeKeys()
		}
	}
	return students, nil
}

func (s *StudentStore) save(students []models.Student) error {
	return SaveJSON(s.path, students)
}

func findStudent(students []models.Student, id string) (*models.Student, error) {
	for i := range students {
		if students[i].ID == id {
			return &students[i], nil
		}
	}
	return nil, fmt.Errorf("%w: student %s", models.ErrNotFound, id)
}

func findSubject(student *models.Student, id string) (*models.Subject, error) {
	for i := range student.Subjects {
		if student.Subjects[i].ID == id {
			return &student.Subjects[i], nil
		}
	}
	return nil, fmt.Errorf("%w: subject %s", models.ErrNotFound, id)
}

func pairTaken(students []models.Student, idType models.IDType, identifier, selfID string) bool {
	for i := range students {
		if students[i].ID == selfID {
			continue
		}
		if students[i].IDType == idType && students[i].Identifier == identifier {
			return true
		}
	}
	return false
}

// Create registers a new student. The registration date defaults to today
// when empty; the (id_type, identifier) pair must be unique across the store.
func (s *StudentStore) Create(name string, idType models.IDType, identifier, date string) (models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(name) == "" {
		return models.Student{}, fmt.Errorf("%w: name must not be empty", models.ErrValidation)
	}
	if !idType.Valid() {
		return models.Student{}, fmt.Errorf("%w: invalid id_type %q", models.ErrValidation, idType)
	}
	if strings.TrimSpace(identifier) == "" {
		return models.Student{}, fmt.Errorf("%w: identifier must not be empty", models.ErrValidation)
	}
	if date == "" {
		date = utils.Today()
	}
	if err := utils.EnsureDate(date); err != nil {
		return models.Student{}, err
	}

	students, err := s.load()
	if err != nil {
		return models.Student{}, err
	}
	if pairTaken(students, idType, identifier, "") {
		return models.Student{}, fmt.Errorf("%w: student %s/%s", models.ErrConflict, idType, identifier)
	}

	student := models.Student{
		ID:               uuid.NewString(),
		Name:             name,
		IDType:           idType,
		Identifier:       identifier,
		RegistrationDate: date,
		Subjects:         []models.Subject{},
	}
	students = append(students, student)
	if err := s.save(students); err != nil {
		return models.Student{}, err
	}
	return student, nil
}

// Get returns one student by id.
func (s *StudentStore) Get(id string) (models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	students, err := s.load()
	if err != nil {
		return models.Student{}, err
	}
	student, err := findStudent(students, id)
	if err != nil {
		return models.Student{}, err
	}
	return *student, nil
}

// List returns students matching the filter, preserving insertion order.
func (s *StudentStore) List(filter StudentFilter) ([]models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var dmin, dmax time.Time
	var err error
	if filter.DateMin != "" {
		if dmin, err = utils.ParseDate(filter.DateMin); err != nil {
			return nil, err
		}
	}
	if filter.DateMax != "" {
		if dmax, err = utils.ParseDate(filter.DateMax); err != nil {
			return nil, err
		}
	}

	students, err := s.load()
	if err != nil {
		return nil, err
	}

	out := make([]models.Student, 0, len(students))
	for _, st := range students {
		if filter.Name != "" && !strings.Contains(strings.ToLower(st.Name), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.IDType != "" && st.IDType != filter.IDType {
			continue
		}
		if filter.Identifier != "" && st.Identifier != filter.Identifier {
			continue
		}
		if filter.DateMin != "" || filter.DateMax != "" {
			reg, err := utils.ParseDate(st.RegistrationDate)
			if err != nil {
				return nil, err
			}
			if filter.DateMin != "" && reg.Before(dmin) {
				continue
			}
			if filter.DateMax != "" && reg.After(dmax) {
				continue
			}
		}
		out = append(out, st)
	}
	return out, nil
}

// Update applies a partial patch to one student. Supplied fields are
// revalidated; the uniqueness of (id_type, identifier) still holds after the
// patch.
func (s *StudentStore) Update(id string, patch StudentPatch) (models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return models.Student{}, fmt.Errorf("%w: name must not be empty", models.ErrValidation)
	}
	if patch.IDType != nil && !patch.IDType.Valid() {
		return models.Student{}, fmt.Errorf("%w: invalid id_type %q", models.ErrValidation, *patch.IDType)
	}
	if patch.Identifier != nil && strings.TrimSpace(*patch.Identifier) == "" {
		return models.Student{}, fmt.Errorf("%w: identifier must not be empty", models.ErrValidation)
	}
	if patch.RegistrationDate != nil {
		if err := utils.EnsureDate(*patch.RegistrationDate); err != nil {
			return models.Student{}, err
		}
	}

	students, err := s.load()
	if err != nil {
		return models.Student{}, err
	}
	student, err := findStudent(students, id)
	if err != nil {
		return models.Student{}, err
	}

	idType := student.IDType
	identifier := student.Identifier
	if patch.IDType != nil {
		idType = *patch.IDType
	}
	if patch.Identifier != nil {
		identifier = *patch.Identifier
	}
	if pairTaken(students, idType, identifier, student.ID) {
		return models.Student{}, fmt.Errorf("%w: student %s/%s", models.ErrConflict, idType, identifier)
	}

	student.IDType = idType
	student.Identifier = identifier
	if patch.Name != nil {
		student.Name = *patch.Name
	}
	if patch.RegistrationDate != nil {
		student.RegistrationDate = *patch.RegistrationDate
	}
	if err := s.save(students); err != nil {
		return models.Student{}, err
	}
	return *student, nil
}

// Delete removes a student and all of its subjects.
func (s *StudentStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	students, err := s.load()
	if err != nil {
		return err
	}
	kept := make([]models.Student, 0, len(students))
	for _, st := range students {
		if st.ID != id {
			kept = append(kept, st)
		}
	}
	if len(kept) == len(students) {
		return fmt.Errorf("%w: student %s", models.ErrNotFound, id)
	}
	return s.save(kept)
}

// AddSubject appends a subject to a student with all stages ungraded.
func (s *StudentStore) AddSubject(studentID, name, date string) (models.Subject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(name) == "" {
		return models.Subject{}, fmt.Errorf("%w: name must not be empty", models.ErrValidation)
	}
	if date == "" {
		date = utils.Today()
	}
	if err := utils.EnsureDate(date); err != nil {
		return models.Subject{}, err
	}

	students, err := s.load()
	if err != nil {
		return models.Subject{}, err
	}
	student, err := findStudent(students, studentID)
	if err != nil {
		return models.Subject{}, err
	}

	subject := models.Subject{
		ID:               uuid.NewString(),
		Name:             name,
		RegistrationDate: date,
		Grades:           models.NewGrades(),
	}
	student.Subjects = append(student.Subjects, subject)
	if err := s.save(students); err != nil {
		return models.Subject{}, err
	}
	return subject, nil
}

// UpdateSubject applies a partial patch to one subject of a student.
func (s *StudentStore) UpdateSubject(studentID, subjectID string, patch SubjectPatch) (models.Subject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return models.Subject{}, fmt.Errorf("%w: name must not be empty", models.ErrValidation)
	}
	if patch.RegistrationDate != nil {
		if err := utils.EnsureDate(*patch.RegistrationDate); err != nil {
			return models.Subject{}, err
		}
	}

	students, err := s.load()
	if err != nil {
		return models.Subject{}, err
	}
	student, err := findStudent(students, studentID)
	if err != nil {
		return models.Subject{}, err
	}
	subject, err := findSubject(student, subjectID)
	if err != nil {
		return models.Subject{}, err
	}

	if patch.Name != nil {
		subject.Name = *patch.Name
	}
	if patch.RegistrationDate != nil {
		subject.RegistrationDate = *patch.RegistrationDate
	}
	if err := s.save(students); err != nil {
		return models.Subject{}, err
	}
	return *subject, nil
}

// DeleteSubject removes one subject from a student.
func (s *StudentStore) DeleteSubject(studentID, subjectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	students, err := s.load()
	if err != nil {
		return err
	}
	student, err := findStudent(students, studentID)
	if err != nil {
		return err
	}
	kept := make([]models.Subject, 0, len(student.Subjects))
	for _, sub := range student.Subjects {
		if sub.ID != subjectID {
			kept = append(kept, sub)
		}
	}
	if len(kept) == len(student.Subjects) {
		return fmt.Errorf("%w: subject %s", models.ErrNotFound, subjectID)
	}
	student.Subjects = kept
	return s.save(students)
}

// SetGrade records one stage grade, rounded to two decimals, overwriting any
// previous value for that stage.
func (s *StudentStore) SetGrade(studentID, subjectID string, stage models.Stage, value float64) (models.Subject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !stage.Valid() {
		return models.Subject{}, fmt.Errorf("%w: invalid stage %q", models.ErrValidation, stage)
	}
	if value < 0 || value > 10 {
		return models.Subject{}, fmt.Errorf("%w: grade must be between 0 and 10", models.ErrValidation)
	}

	students, err := s.load()
	if err != nil {
		return models.Subject{}, err
	}
	student, err := findStudent(students, studentID)
	if err != nil {
		return models.Subject{}, err
	}
	subject, err := findSubject(student, subjectID)
	if err != nil {
		return models.Subject{}, err
	}

	rounded := models.Round2(value)
	subject.Grades[stage] = &rounded
	if err := s.save(students); err != nil {
		return models.Subject{}, err
	}
	return *subject, nil
}
