package main

import (
	"bytes"
	"cellgrid/contracts"
	"fmt"
	"net/http"
	"sync"
	"time"

	json "github.com/bytedance/sonic"
)

const WebhookWorkersCount = 5

const webhookRequestTimeout = time.Second * 5

type SheetWebhooks map[string]string

type deliveryKey struct {
	SheetId string
	CellId  string
}

// WebhookDispatcher pushes recomputed cell values to subscribed URLs. One
// edit invalidates a whole dependency subtree at once, so deliveries are
// keyed by cell and coalesced: a cell that is recomputed again before its
// webhook went out is delivered once, with the latest value.
type WebhookDispatcher struct {
	mutex         sync.Mutex
	subscriptions map[string]SheetWebhooks
	pending       map[deliveryKey]*contracts.CellData
	queue         chan deliveryKey
}

func NewWebhookDispatcher() *WebhookDispatcher {
	return &WebhookDispatcher{
		subscriptions: map[string]SheetWebhooks{},
		pending:       map[deliveryKey]*contracts.CellData{},
		queue:         make(chan deliveryKey, 64),
	}
}

func (dispatcher *WebhookDispatcher) SetWebhookUrl(sheetId string, cellId string, webhookUrl string) {
	dispatcher.mutex.Lock()
	defer dispatcher.mutex.Unlock()

	if webhookUrl == "" {
		delete(dispatcher.subscriptions[sheetId], cellId)
		if len(dispatcher.subscriptions[sheetId]) == 0 {
			delete(dispatcher.subscriptions, sheetId)
		}
		return
	}

	if _, ok := dispatcher.subscriptions[sheetId]; !ok {
		dispatcher.subscriptions[sheetId] = SheetWebhooks{}
	}
	dispatcher.subscriptions[sheetId][cellId] = webhookUrl
}

func (dispatcher *WebhookDispatcher) GetWebhookUrl(sheetId string, cellId string) string {
	dispatcher.mutex.Lock()
	defer dispatcher.mutex.Unlock()

	return dispatcher.subscriptions[sheetId][cellId]
}

// Notify records the fresh values of the subscribed cells among cells. A cell
// without a subscription is dropped here; a cell already awaiting delivery
// only has its payload replaced, keeping one queue slot per cell.
func (dispatcher *WebhookDispatcher) Notify(sheetId string, cells []*contracts.CellData) {
	newKeys := make([]deliveryKey, 0, len(cells))

	dispatcher.mutex.Lock()
	sheetSubscriptions := dispatcher.subscriptions[sheetId]
	for _, cell := range cells {
		if _, ok := sheetSubscriptions[cell.CellId]; !ok {
			continue
		}

		key := deliveryKey{SheetId: sheetId, CellId: cell.CellId}
		if _, alreadyQueued := dispatcher.pending[key]; !alreadyQueued {
			newKeys = append(newKeys, key)
		}
		dispatcher.pending[key] = cell
	}
	dispatcher.mutex.Unlock()

	for _, key := range newKeys {
		dispatcher.queue <- key
	}
}

func (dispatcher *WebhookDispatcher) Start() {
	for i := 0; i < WebhookWorkersCount; i++ {
		go dispatcher.runWebhookSenderWorker()
	}
}

func (dispatcher *WebhookDispatcher) Close() {
	close(dispatcher.queue)
}

func (dispatcher *WebhookDispatcher) runWebhookSenderWorker() {
	client := &http.Client{
		Timeout: webhookRequestTimeout,
	}

	for key := range dispatcher.queue {
		webhook, cell := dispatcher.takePending(key)
		if webhook == "" || cell == nil {
			// unsubscribed between queueing and delivery
			continue
		}
		dispatcher.send(client, webhook, cell)
	}
}

func (dispatcher *WebhookDispatcher) takePending(key deliveryKey) (string, *contracts.CellData) {
	dispatcher.mutex.Lock()
	defer dispatcher.mutex.Unlock()

	cell := dispatcher.pending[key]
	delete(dispatcher.pending, key)

	return dispatcher.subscriptions[key.SheetId][key.CellId], cell
}

func (dispatcher *WebhookDispatcher) send(client *http.Client, webhook string, cell *contracts.CellData) {
	payload, _ := json.Marshal(cell)

	response, err := client.Post(webhook, "application/json", bytes.NewReader(payload))
	if err != nil {
		fmt.Printf("webhook %s: %s\n", webhook, err)
		return
	}
	_ = response.Body.Close()

	if response.StatusCode >= 300 {
		fmt.Printf("webhook %s: unexpected status %s\n", webhook, response.Status)
	}
}
