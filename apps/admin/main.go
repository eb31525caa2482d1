package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/trezcool/missingwork/apps/api/di"
	"github.com/trezcool/missingwork/core"
	"github.com/trezcool/missingwork/core/assignment"
	"github.com/trezcool/missingwork/core/grade"
	"github.com/trezcool/missingwork/core/profile"
	"github.com/trezcool/missingwork/core/roster"
	"github.com/trezcool/missingwork/core/student"
	logsvc "github.com/trezcool/missingwork/services/logger"
	"github.com/trezcool/missingwork/storage/kvstore"
)

func main() {
	conf := core.NewConfig()
	logger := logsvc.NewRollbarLogger(log.New(os.Stderr, "ADMIN : ", log.LstdFlags), conf)
	defer logger.Close()

	// set up storage
	store, err := di.NewStore(conf)
	errAndDie(logger, err)
	db, err := kvstore.Open(context.Background(), store, logger)
	errAndDie(logger, err)

	// set up registries
	v := core.NewValidator()
	mailSvc := di.NewEmailService(conf, logger)
	grades := grade.NewService(kvstore.NewGradeRepository(db), v)
	students := student.NewService(kvstore.NewStudentRepository(db), grades, v)
	assignments := assignment.NewService(kvstore.NewAssignmentRepository(db), grades, students, v)
	profiles := profile.NewService(kvstore.NewProfileRepository(db), v)

	// start CLI
	cli := commandLine{
		out:         os.Stdout,
		mediaOpts:   mediaOptions(conf),
		grades:      grades,
		students:    students,
		assignments: assignments,
		profiles:    profiles,
		roster:      roster.NewService(grades, students, assignments, profiles, mailSvc),
	}
	err = cli.run(os.Args)

	// let queued reminders go out before exiting
	if w, ok := mailSvc.(interface{ Wait() }); ok {
		w.Wait()
	}
	if err != nil {
		if err != errHelp {
			fmt.Fprintf(os.Stderr, "error: %s\n", err)
		}
		logger.Close()
		os.Exit(1)
	}
}

func errAndDie(logger core.Logger, err error) {
	if err != nil {
		logger.Fatal(err.Error(), err)
	}
}
