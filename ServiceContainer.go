package main

import (
	"cellgrid/contracts"

	"github.com/gin-gonic/gin"
	"go.etcd.io/bbolt"
)

type ServiceContainer struct {
	Database          *bbolt.DB
	SheetRepository   contracts.SheetRepository
	WebhookDispatcher contracts.WebhookDispatcher
	ApiController     contracts.ApiController
	Router            *gin.Engine
}

func BuildServiceContainer(configDbPath string) (container ServiceContainer, err error) {
	container.Database, err = bbolt.Open(configDbPath, 0600, nil)
	if err != nil {
		return
	}

	serializer := NewCellBinarySerializer()
	container.WebhookDispatcher = NewWebhookDispatcher()

	sheetRepository := NewSheetRepository(container.Database, serializer, container.WebhookDispatcher)
	err = sheetRepository.LoadSheets()
	container.SheetRepository = sheetRepository

	container.ApiController = NewApiController(container.SheetRepository, container.WebhookDispatcher)

	container.Router = SetupRouter(container.ApiController)

	return
}
