package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/edukube/gradebook/api/helpers"
	"github.com/edukube/gradebook/api/studentapi"
	"github.com/edukube/gradebook/core"
	"github.com/edukube/gradebook/core/student"
	logsvc "github.com/edukube/gradebook/services/logger"
	"github.com/edukube/gradebook/storage/database"
	inmemdb "github.com/edukube/gradebook/storage/database/inmem"
	sqlitedb "github.com/edukube/gradebook/storage/database/sqlite"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "STUDENT : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)

	repo, closeDB, err := setUpRepository(conf, logger)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer closeDB()

	svc := student.NewService(repo, logger, validate, translator)

	// =========================================================================
	// Start Service

	logger.Info(fmt.Sprintf("student-service initializing : version %q", conf.Version))
	defer logger.Info("Service stopped")

	server := studentapi.NewServer(
		&helpers.Options{
			Address:     conf.Server.StudentAddr,
			ServiceName: "student-service",
			Conf:        conf,
			Logger:      logger,
		},
		svc,
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func setUpRepository(conf *core.Config, logger core.Logger) (student.Repository, func(), error) {
	if conf.Database.Path == "" {
		return inmemdb.NewStudentRepository(inmemdb.Open()), func() {}, nil
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() {
		if cErr := db.Close(); cErr != nil {
			logger.Error(fmt.Sprintf("closing database: %v", cErr), cErr)
		}
	}

	if err = database.CreateSchema(db); err != nil {
		closeDB()
		return nil, nil, err
	}
	if conf.Database.Seed {
		n, sErr := database.SeedStudents(db)
		if sErr != nil {
			closeDB()
			return nil, nil, sErr
		}
		logger.Info(fmt.Sprintf("seeded %d students", n))
	}
	return sqlitedb.NewStudentRepository(db), closeDB, nil
}
