package main

import (
	"bytes"
	"cellgrid/contracts"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"cellgrid/mocks"
)

func _parseJsonBody(w *httptest.ResponseRecorder) (map[string]any, error) {
	response := map[string]any{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	return response, err
}

func TestApiController_GetCellAction(t *testing.T) {
	gin.SetMode(gin.TestMode)

	requestToGetCellAction := func(apiController contracts.ApiController) *httptest.ResponseRecorder {
		router := SetupRouter(apiController)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/"+ApiVersion+"/sheet1/A1", nil)
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("should return cell", func(t *testing.T) {
		sheetRepository := mocks.NewSheetRepository(t)
		sheetRepository.On("GetCell", "sheet1", "A1").
			Return(&contracts.CellData{
				CellId: "A1",
				Text:   "=1+2",
				Value:  "3",
			}, nil)

		apiController := NewApiController(sheetRepository, nil)

		w := requestToGetCellAction(apiController)
		response, err := _parseJsonBody(w)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "=1+2", response["text"])
		assert.Equal(t, "3", response["value"])
	})

	t.Run("cell not found", func(t *testing.T) {
		sheetRepository := mocks.NewSheetRepository(t)
		sheetRepository.On("GetCell", "sheet1", "A1").Return(nil, contracts.CellNotFoundError)

		apiController := NewApiController(sheetRepository, nil)

		w := requestToGetCellAction(apiController)
		response, err := _parseJsonBody(w)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, contracts.CellNotFoundError.Error(), response["error"])
	})

	t.Run("sheet not found", func(t *testing.T) {
		sheetRepository := mocks.NewSheetRepository(t)
		sheetRepository.On("GetCell", "sheet1", "A1").Return(nil, contracts.SheetNotFoundError)

		apiController := NewApiController(sheetRepository, nil)

		w := requestToGetCellAction(apiController)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid position", func(t *testing.T) {
		sheetRepository := mocks.NewSheetRepository(t)
		sheetRepository.On("GetCell", "sheet1", "A1").
			Return(nil, fmt.Errorf("cell_id `A1`: %w", contracts.InvalidPositionError))

		apiController := NewApiController(sheetRepository, nil)

		w := requestToGetCellAction(apiController)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("custom error", func(t *testing.T) {
		sheetRepository := mocks.NewSheetRepository(t)
		sheetRepository.On("GetCell", "sheet1", "A1").Return(nil, errors.New("test"))

		apiController := NewApiController(sheetRepository, nil)

		w := requestToGetCellAction(apiController)
		response, err := _parseJsonBody(w)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "test", response["error"])
	})
}

func TestApiController_SetCellAction(t *testing.T) {
	gin.SetMode(gin.TestMode)

	requestToSetCellAction := func(apiController contracts.ApiController, data map[string]string) *httptest.ResponseRecorder {
		jsonBody, _ := json.Marshal(data)

		router := SetupRouter(apiController)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/"+ApiVersion+"/sheet1/A1", bytes.NewBuffer(jsonBody))
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("success", func(t *testing.T) {
		sheetRepository := mocks.NewSheetRepository(t)
		sheetRepository.On("SetCell", "sheet1", "A1", "=1+2").
			Return(&contracts.CellData{
				CellId: "A1",
				Text:   "=1+2",
				Value:  "3",
			}, nil)

		apiController := NewApiController(sheetRepository, nil)

		w := requestToSetCellAction(apiController, map[string]string{"text": "=1+2"})
		response, err := _parseJsonBody(w)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "=1+2", response["text"])
		assert.Equal(t, "3", response["value"])
	})

	t.Run("circular dependency", func(t *testing.T) {
		sheetRepository := mocks.NewSheetRepository(t)
		sheetRepository.On("SetCell", "sheet1", "A1", "=A1").
			Return(nil, contracts.CircularDependencyError)

		apiController := NewApiController(sheetRepository, nil)

		w := requestToSetCellAction(apiController, map[string]string{"text": "=A1"})
		response, err := _parseJsonBody(w)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, contracts.CircularDependencyError.Error(), response["error"])
	})

	t.Run("broken formula", func(t *testing.T) {
		sheetRepository := mocks.NewSheetRepository(t)
		sheetRepository.On("SetCell", "sheet1", "A1", "=*bad").
			Return(nil, fmt.Errorf("%w: unexpected token", contracts.FormulaSyntaxError))

		apiController := NewApiController(sheetRepository, nil)

		w := requestToSetCellAction(apiController, map[string]string{"text": "=*bad"})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("missing body", func(t *testing.T) {
		apiController := NewApiController(mocks.NewSheetRepository(t), nil)

		router := SetupRouter(apiController)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/"+ApiVersion+"/sheet1/A1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestApiController_ClearCellAction(t *testing.T) {
	gin.SetMode(gin.TestMode)

	requestToClearCellAction := func(apiController contracts.ApiController) *httptest.ResponseRecorder {
		router := SetupRouter(apiController)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodDelete, "/api/"+ApiVersion+"/sheet1/A1", nil)
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("success", func(t *testing.T) {
		sheetRepository := mocks.NewSheetRepository(t)
		sheetRepository.On("ClearCell", "sheet1", "A1").Return(nil)

		apiController := NewApiController(sheetRepository, nil)

		w := requestToClearCellAction(apiController)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("sheet not found", func(t *testing.T) {
		sheetRepository := mocks.NewSheetRepository(t)
		sheetRepository.On("ClearCell", "sheet1", "A1").Return(contracts.SheetNotFoundError)

		apiController := NewApiController(sheetRepository, nil)

		w := requestToClearCellAction(apiController)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestApiController_GetSheetAction(t *testing.T) {
	gin.SetMode(gin.TestMode)

	requestToGetSheetAction := func(apiController contracts.ApiController) *httptest.ResponseRecorder {
		router := SetupRouter(apiController)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/"+ApiVersion+"/sheet1", nil)
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("success", func(t *testing.T) {
		sheetRepository := mocks.NewSheetRepository(t)
		sheetRepository.On("GetGrid", "sheet1").
			Return(&contracts.GridData{
				Rows:   1,
				Cols:   2,
				Values: "1\t2\n",
				Texts:  "1\t=A1*2\n",
			}, nil)

		apiController := NewApiController(sheetRepository, nil)

		w := requestToGetSheetAction(apiController)
		response, err := _parseJsonBody(w)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(1), response["rows"])
		assert.Equal(t, float64(2), response["cols"])
		assert.Equal(t, "1\t2\n", response["values"])
		assert.Equal(t, "1\t=A1*2\n", response["texts"])
	})

	t.Run("sheet not found", func(t *testing.T) {
		sheetRepository := mocks.NewSheetRepository(t)
		sheetRepository.On("GetGrid", "sheet1").Return(nil, contracts.SheetNotFoundError)

		apiController := NewApiController(sheetRepository, nil)

		w := requestToGetSheetAction(apiController)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestApiController_SubscribeAction(t *testing.T) {
	gin.SetMode(gin.TestMode)

	requestToSubscribeAction := func(apiController contracts.ApiController, body []byte) *httptest.ResponseRecorder {
		router := SetupRouter(apiController)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/"+ApiVersion+"/sheet1/A1/subscribe", bytes.NewBuffer(body))
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("success", func(t *testing.T) {
		webhookDispatcher := mocks.NewWebhookDispatcher(t)
		webhookDispatcher.On("SetWebhookUrl", "sheet1", "A1", "http://example.com/hook").Return()

		apiController := NewApiController(mocks.NewSheetRepository(t), webhookDispatcher)

		body, _ := json.Marshal(map[string]string{"webhook_url": "http://example.com/hook"})
		w := requestToSubscribeAction(apiController, body)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("missing url", func(t *testing.T) {
		apiController := NewApiController(mocks.NewSheetRepository(t), mocks.NewWebhookDispatcher(t))

		body, _ := json.Marshal(map[string]string{})
		w := requestToSubscribeAction(apiController, body)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
