// Package roster builds the cross-collection views of the registries.
// References that no longer resolve are left out of every view.
package roster

import (
	"context"
	"net/mail"

	"github.com/pkg/errors"

	"github.com/trezcool/missingwork/core"
	"github.com/trezcool/missingwork/core/assignment"
	"github.com/trezcool/missingwork/core/grade"
	"github.com/trezcool/missingwork/core/profile"
	"github.com/trezcool/missingwork/core/ref"
	"github.com/trezcool/missingwork/core/student"
)

const missingWorkTemplate = "missing_work"

type (
	GradeGroup struct {
		Grade       grade.Grade       `json:"grade"`
		Students    []student.Student `json:"students"`
		Assignments []AssignmentView  `json:"assignments"`
	}

	// AssignmentView is an Assignment with its missing students resolved.
	AssignmentView struct {
		assignment.Assignment
		Missing []student.Student `json:"missing"`
	}

	reminderData struct {
		StudentName    string
		TeacherName    string
		Type           string
		AssignmentName string
		Number         string
		Date           string
		WeekNumber     int
	}

	Service struct {
		grades      *grade.Service
		students    *student.Service
		assignments *assignment.Service
		profiles    *profile.Service
		mailSvc     core.EmailService
	}
)

func NewService(
	grades *grade.Service,
	students *student.Service,
	assignments *assignment.Service,
	profiles *profile.Service,
	mailSvc core.EmailService,
) *Service {
	return &Service{
		grades:      grades,
		students:    students,
		assignments: assignments,
		profiles:    profiles,
		mailSvc:     mailSvc,
	}
}

type snapshot struct {
	grades      []grade.Grade
	students    []student.Student
	assignments []assignment.Assignment
	studentIx   ref.Index[student.Student]
}

// load reads every collection and drops the students and assignments of deleted grades.
func (svc *Service) load(ctx context.Context) (snapshot, error) {
	grades, err := svc.grades.List(ctx)
	if err != nil {
		return snapshot{}, errors.Wrap(err, "listing grades")
	}
	students, err := svc.students.List(ctx)
	if err != nil {
		return snapshot{}, errors.Wrap(err, "listing students")
	}
	assignments, err := svc.assignments.List(ctx)
	if err != nil {
		return snapshot{}, errors.Wrap(err, "listing assignments")
	}

	gradeIx := ref.NewIndex(grades)
	students = ref.KeepResolved(students, gradeIx, func(s student.Student) string { return s.GradeID })
	assignments = ref.KeepResolved(assignments, gradeIx, func(a assignment.Assignment) string { return a.GradeID })
	return snapshot{
		grades:      grades,
		students:    students,
		assignments: assignments,
		studentIx:   ref.NewIndex(students),
	}, nil
}

// Overview groups students and assignments by grade, in grade insertion order.
func (svc *Service) Overview(ctx context.Context) ([]GradeGroup, error) {
	snap, err := svc.load(ctx)
	if err != nil {
		return nil, err
	}

	groups := make([]GradeGroup, 0, len(snap.grades))
	byGrade := make(map[string]int, len(snap.grades))
	for i, g := range snap.grades {
		byGrade[g.ID] = i
		groups = append(groups, GradeGroup{
			Grade:       g,
			Students:    []student.Student{},
			Assignments: []AssignmentView{},
		})
	}
	for _, s := range snap.students {
		grp := &groups[byGrade[s.GradeID]]
		grp.Students = append(grp.Students, s)
	}
	for _, a := range snap.assignments {
		grp := &groups[byGrade[a.GradeID]]
		grp.Assignments = append(grp.Assignments, AssignmentView{
			Assignment: a,
			Missing:    snap.studentIx.ResolveAll(a.StudentIDs),
		})
	}
	return groups, nil
}

// MissingWork returns the assignments the student is missing.
func (svc *Service) MissingWork(ctx context.Context, studentID string) ([]assignment.Assignment, error) {
	if _, err := svc.students.Get(ctx, studentID); err != nil {
		return nil, err
	}
	snap, err := svc.load(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]assignment.Assignment, 0)
	for _, a := range snap.assignments {
		for _, id := range a.StudentIDs {
			if id == studentID {
				res = append(res, a)
				break
			}
		}
	}
	return res, nil
}

// SendReminders emails every missing student of the assignment that has an email address.
// It returns the number of messages sent.
func (svc *Service) SendReminders(ctx context.Context, assignmentID string) (int, error) {
	a, err := svc.assignments.Get(ctx, assignmentID)
	if err != nil {
		return 0, err
	}
	prof, err := svc.profiles.Get(ctx)
	if err != nil {
		return 0, err
	}
	students, err := svc.students.List(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "listing students")
	}

	var msgs []*core.EmailMessage
	for _, s := range ref.NewIndex(students).ResolveAll(a.StudentIDs) {
		if s.Email == "" {
			continue
		}
		msgs = append(msgs, &core.EmailMessage{
			To:           []mail.Address{{Name: s.Name, Address: s.Email}},
			Subject:      "Missing " + string(a.Type) + ": " + a.Name,
			TemplateName: missingWorkTemplate,
			AppName:      prof.AppName,
			TemplateData: reminderData{
				StudentName:    s.Name,
				TeacherName:    prof.Name,
				Type:           string(a.Type),
				AssignmentName: a.Name,
				Number:         a.Number,
				Date:           a.Date,
				WeekNumber:     a.WeekNumber,
			},
		})
	}
	if len(msgs) > 0 {
		svc.mailSvc.SendMessages(msgs...)
	}
	return len(msgs), nil
}
