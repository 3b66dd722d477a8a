package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/edukube/gradebook/api/helpers"
	"github.com/edukube/gradebook/api/receiverapi"
	"github.com/edukube/gradebook/core"
	logsvc "github.com/edukube/gradebook/services/logger"
)

func main() {
	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "RECEIVER : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	logger.Info(fmt.Sprintf("webhook-receiver initializing : version %q", conf.Version))
	defer logger.Info("Service stopped")

	server := receiverapi.NewServer(&helpers.Options{
		Address:     conf.Server.ReceiverAddr,
		ServiceName: "webhook-receiver",
		Conf:        conf,
		Logger:      logger,
	})

	go func() {
		server.Start()
	}()

	select {
	case err := <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}
