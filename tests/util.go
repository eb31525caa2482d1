package testutil

import (
	"context"
	"io"
	"log"
	"sync"
	"testing"

	"github.com/pkg/errors"

	"github.com/trezcool/missingwork/core"
	"github.com/trezcool/missingwork/core/assignment"
	"github.com/trezcool/missingwork/core/grade"
	"github.com/trezcool/missingwork/core/profile"
	"github.com/trezcool/missingwork/core/roster"
	"github.com/trezcool/missingwork/core/student"
	emailsvc "github.com/trezcool/missingwork/services/email"
	logsvc "github.com/trezcool/missingwork/services/logger"
	"github.com/trezcool/missingwork/storage/kvstore"
	"github.com/trezcool/missingwork/storage/memstore"
)

// Logo is a valid school logo data URI.
const Logo = "data:image/png;base64,iVBORw0KGgo="

// ErrStoreDown is returned by a Store whose writes are failing.
var ErrStoreDown = errors.New("store is down")

type (
	// Store is a memstore whose writes can be made to fail, and that counts them.
	Store struct {
		*memstore.Store
		mu     sync.Mutex
		fail   bool
		writes map[string]int
	}

	// App holds every registry, wired over the same Store.
	App struct {
		Conf        *core.Config
		Log         core.Logger
		Store       *Store
		DB          *kvstore.DB
		Validator   *core.Validator
		Grades      *grade.Service
		Students    *student.Service
		Assignments *assignment.Service
		Profiles    *profile.Service
		Roster      *roster.Service
		Mail        *emailsvc.ConsoleServiceMock
	}
)

func NewStore() *Store {
	return &Store{Store: memstore.New(), writes: make(map[string]int)}
}

// FailWrites makes every following Set fail with ErrStoreDown.
func (s *Store) FailWrites(fail bool) {
	s.mu.Lock()
	s.fail = fail
	s.mu.Unlock()
}

// Writes returns the number of successful writes of the collection.
func (s *Store) Writes(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes[key]
}

func (s *Store) Set(ctx context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return ErrStoreDown
	}
	s.writes[key]++
	return s.Store.Set(ctx, key, data)
}

func Config() *core.Config {
	conf := &core.Config{
		Env:              "TEST",
		Build:            "test",
		TestMode:         true,
		AppName:          "Missing Work",
		Storage:          core.StorageMemory,
		DefaultFromEmail: "noreply@school.test",
	}
	conf.Media.MaxBytes = 5 * 1024 * 1024
	return conf
}

func Logger() core.Logger {
	return logsvc.NewRollbarLogger(log.New(io.Discard, "TEST : ", 0), Config())
}

// NewApp wires all registries over store, a fresh one if nil.
func NewApp(t *testing.T, store *Store) *App {
	t.Helper()
	if store == nil {
		store = NewStore()
	}
	conf := Config()
	logger := Logger()

	db, err := kvstore.Open(context.Background(), store, logger)
	if err != nil {
		t.Fatalf("kvstore.Open() failed: %v", err)
	}

	v := core.NewValidator()
	app := &App{
		Conf:      conf,
		Log:       logger,
		Store:     store,
		DB:        db,
		Validator: v,
		Mail:      emailsvc.NewConsoleServiceMock(conf, logger),
	}
	app.Grades = grade.NewService(kvstore.NewGradeRepository(db), v)
	app.Students = student.NewService(kvstore.NewStudentRepository(db), app.Grades, v)
	app.Assignments = assignment.NewService(kvstore.NewAssignmentRepository(db), app.Grades, app.Students, v)
	app.Profiles = profile.NewService(kvstore.NewProfileRepository(db), v)
	app.Roster = roster.NewService(app.Grades, app.Students, app.Assignments, app.Profiles, app.Mail)
	return app
}

func CreateGrade(t *testing.T, svc *grade.Service, number int, class string) grade.Grade {
	t.Helper()
	grd, err := svc.Add(context.Background(), grade.NewGrade{Number: number, Class: class})
	if err != nil {
		t.Fatalf("createGrade() failed: %v", err)
	}
	return grd
}

func CreateStudent(t *testing.T, svc *student.Service, name, gradeID, email string) student.Student {
	t.Helper()
	s, err := svc.Add(context.Background(), student.NewStudent{Name: name, GradeID: gradeID, Email: email})
	if err != nil {
		t.Fatalf("createStudent() failed: %v", err)
	}
	return s
}

func CreateAssignment(t *testing.T, svc *assignment.Service, gradeID, name, date string, studentIDs ...string) assignment.Assignment {
	t.Helper()
	a, err := svc.Add(context.Background(), assignment.NewAssignment{
		GradeID:    gradeID,
		Type:       assignment.Homework,
		Name:       name,
		Date:       date,
		StudentIDs: studentIDs,
	})
	if err != nil {
		t.Fatalf("createAssignment() failed: %v", err)
	}
	return a
}

func CompleteSetup(t *testing.T, svc *profile.Service) profile.Profile {
	t.Helper()
	p, err := svc.CompleteSetup(context.Background(), profile.Setup{Name: "Ms. Frizzle", AppName: "Missing Work", Logo: Logo})
	if err != nil {
		t.Fatalf("completeSetup() failed: %v", err)
	}
	return p
}
