package service

import (
	"encoding/json"

	"go-cafe-central/internal/model"
	"go-cafe-central/internal/ws"
)

// broadcast pushes a JSON payload to every connected websocket client.
// Called after the surrounding transaction has committed; nil hub (tests)
// is a no-op.
func broadcast(hub *ws.Hub, payload map[string]interface{}) {
	if hub == nil {
		return
	}
	go func() {
		msg, _ := json.Marshal(payload)
		hub.Broadcast <- msg
	}()
}

// broadcastStockChange announces the new stock level plus any alert
// transition the mutation caused.
func broadcastStockChange(hub *ws.Hub, action string, product *model.Product, outcome AlertOutcome, actorName string) {
	payload := map[string]interface{}{
		"type":   "stock_update",
		"action": action,
		"product": map[string]interface{}{
			"id":            product.ID,
			"name":          product.Name,
			"current_stock": product.CurrentStock,
			"unit":          product.Unit,
		},
		"actor": actorName,
	}
	if outcome.Created != nil {
		payload["alert_created"] = map[string]interface{}{
			"id":                     outcome.Created.ID,
			"current_stock_at_alert": outcome.Created.CurrentStockAtAlert,
		}
	}
	if outcome.Resolved {
		payload["alerts_resolved"] = true
	}
	broadcast(hub, payload)
}
