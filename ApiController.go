package main

import (
	"cellgrid/contracts"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ApiController struct {
	SheetRepository   contracts.SheetRepository
	WebhookDispatcher contracts.WebhookDispatcher
}

type CellEndpointParams struct {
	SheetId string `uri:"sheet_id" binding:"required"`
	CellId  string `uri:"cell_id" binding:"required"`
}

type SheetEndpointParams struct {
	SheetId string `uri:"sheet_id" binding:"required"`
}

type SetCellRequest struct {
	Text string `json:"text"`
}

type SubscribeRequest struct {
	WebhookUrl string `json:"webhook_url" binding:"required"`
}

func NewApiController(sheetRepository contracts.SheetRepository, webhookDispatcher contracts.WebhookDispatcher) *ApiController {
	return &ApiController{
		SheetRepository:   sheetRepository,
		WebhookDispatcher: webhookDispatcher,
	}
}

func (api *ApiController) SetCellAction(c *gin.Context) {
	params := CellEndpointParams{}
	request := SetCellRequest{}
	var response *contracts.CellData

	err := c.ShouldBindUri(&params)
	if err == nil {
		err = c.ShouldBindJSON(&request)
	}

	if err == nil {
		response, err = api.SheetRepository.SetCell(params.SheetId, params.CellId, request.Text)
	}

	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "text": request.Text})
	} else {
		c.JSON(http.StatusCreated, response)
	}
}

func (api *ApiController) GetCellAction(c *gin.Context) {
	params := CellEndpointParams{}
	var response *contracts.CellData

	err := c.ShouldBindUri(&params)

	if err == nil {
		response, err = api.SheetRepository.GetCell(params.SheetId, params.CellId)
	}

	if errors.Is(err, contracts.CellNotFoundError) || errors.Is(err, contracts.SheetNotFoundError) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, contracts.InvalidPositionError) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	} else {
		c.JSON(http.StatusOK, response)
	}
}

func (api *ApiController) ClearCellAction(c *gin.Context) {
	params := CellEndpointParams{}

	err := c.ShouldBindUri(&params)

	if err == nil {
		err = api.SheetRepository.ClearCell(params.SheetId, params.CellId)
	}

	if errors.Is(err, contracts.SheetNotFoundError) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, contracts.InvalidPositionError) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	} else {
		c.Status(http.StatusNoContent)
	}
}

func (api *ApiController) GetSheetAction(c *gin.Context) {
	params := SheetEndpointParams{}
	var response *contracts.GridData

	err := c.ShouldBindUri(&params)

	if err == nil {
		response, err = api.SheetRepository.GetGrid(params.SheetId)
	}

	if errors.Is(err, contracts.SheetNotFoundError) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	} else {
		c.JSON(http.StatusOK, response)
	}
}

func (api *ApiController) SubscribeAction(c *gin.Context) {
	params := CellEndpointParams{}
	request := SubscribeRequest{}

	err := c.ShouldBindUri(&params)
	if err == nil {
		err = c.ShouldBindJSON(&request)
	}

	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	api.WebhookDispatcher.SetWebhookUrl(params.SheetId, params.CellId, request.WebhookUrl)
	c.JSON(http.StatusCreated, gin.H{"webhook_url": request.WebhookUrl})
}
