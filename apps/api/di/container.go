package di

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/trezcool/missingwork/apps/api/echo"
	"github.com/trezcool/missingwork/core"
	"github.com/trezcool/missingwork/core/assignment"
	"github.com/trezcool/missingwork/core/grade"
	"github.com/trezcool/missingwork/core/profile"
	"github.com/trezcool/missingwork/core/roster"
	"github.com/trezcool/missingwork/core/student"
	emailsvc "github.com/trezcool/missingwork/services/email"
	sendgridmail "github.com/trezcool/missingwork/services/email/sendgrid"
	logsvc "github.com/trezcool/missingwork/services/logger"
	"github.com/trezcool/missingwork/storage/filestore"
	"github.com/trezcool/missingwork/storage/kvstore"
	"github.com/trezcool/missingwork/storage/memstore"
)

type StoreLoggerParam struct {
	dig.In
	Logger core.Logger `name:"storeLogger"`
}

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags)
	return logsvc.NewRollbarLogger(stdLogger, conf)
}

func newStoreLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "STORE : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	return logsvc.NewRollbarLogger(stdLogger, conf)
}

// NewStore opens the configured store.
func NewStore(conf *core.Config) (core.Store, error) {
	switch conf.Storage {
	case core.StorageMemory:
		return memstore.New(), nil
	case core.StorageFile, "":
		return filestore.Open(conf.DataDir)
	default:
		return nil, errors.Errorf("unknown storage %q", conf.Storage)
	}
}

func newDB(store core.Store, loggerParam StoreLoggerParam) *kvstore.DB {
	db, err := kvstore.Open(context.Background(), store, loggerParam.Logger)
	if err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("loading collections: %v", err), err)
	}
	return db
}

// NewEmailService logs emails in debug mode and sends them with sendgrid otherwise.
func NewEmailService(conf *core.Config, logger core.Logger) core.EmailService {
	if conf.Debug || conf.SendgridAPIKey == "" {
		return emailsvc.NewConsoleService(conf, logger)
	}
	return sendgridmail.NewService(conf, logger)
}

func newStudentService(repo student.Repository, grades *grade.Service, v *core.Validator) *student.Service {
	return student.NewService(repo, grades, v)
}

func newAssignmentService(
	repo assignment.Repository,
	grades *grade.Service,
	students *student.Service,
	v *core.Validator,
) *assignment.Service {
	return assignment.NewService(repo, grades, students, v)
}

type serverParams struct {
	dig.In

	Conf          *core.Config
	Logger        core.Logger
	GradeSvc      *grade.Service
	StudentSvc    *student.Service
	AssignmentSvc *assignment.Service
	ProfileSvc    *profile.Service
	RosterSvc     *roster.Service
}

func newServer(p serverParams) *echoapi.Server {
	return echoapi.NewServer(&echoapi.Deps{
		Conf:          p.Conf,
		Logger:        p.Logger,
		GradeSvc:      p.GradeSvc,
		StudentSvc:    p.StudentSvc,
		AssignmentSvc: p.AssignmentSvc,
		ProfileSvc:    p.ProfileSvc,
		RosterSvc:     p.RosterSvc,
	})
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newStoreLogger, dig.Name("storeLogger")))
	must(c.Provide(NewStore))
	must(c.Provide(newDB))
	must(c.Provide(NewEmailService))
	must(c.Provide(core.NewValidator))

	must(c.Provide(kvstore.NewGradeRepository))
	must(c.Provide(kvstore.NewStudentRepository))
	must(c.Provide(kvstore.NewAssignmentRepository))
	must(c.Provide(kvstore.NewProfileRepository))

	must(c.Provide(grade.NewService))
	must(c.Provide(newStudentService))
	must(c.Provide(newAssignmentService))
	must(c.Provide(profile.NewService))
	must(c.Provide(roster.NewService))
	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
