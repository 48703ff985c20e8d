package contracts

type WebhookDispatcher interface {
	SetWebhookUrl(sheetId string, cellId string, webhookUrl string)
	GetWebhookUrl(sheetId string, cellId string) string

	// Notify queues the freshly recomputed cells of sheetId for delivery to
	// their subscribed webhooks.
	Notify(sheetId string, cells []*CellData)

	Start()
	Close()
}
