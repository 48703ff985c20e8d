package main

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

const ExitCodeMainError = 1

const DefaultListenAddress = ":8080"

func RunApp() error {
	gin.SetMode(gin.ReleaseMode)

	listenAddress := os.Getenv("LISTEN_ADDRESS")
	if listenAddress == "" {
		listenAddress = DefaultListenAddress
	}

	serviceContainer, err := BuildServiceContainer(os.Getenv("DATABASE_FILEPATH"))
	if err != nil {
		return err
	}

	serviceContainer.WebhookDispatcher.Start()
	defer serviceContainer.WebhookDispatcher.Close()
	defer serviceContainer.Database.Close()

	return http.ListenAndServe(listenAddress, serviceContainer.Router)
}

func HandleExitError(errStream io.Writer, err error) int {
	if err == nil {
		return 0
	}

	_, _ = fmt.Fprintln(errStream, err)
	return ExitCodeMainError
}
