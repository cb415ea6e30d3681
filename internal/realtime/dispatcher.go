package realtime

import (
	"encoding/json"
	"log"

	"github.com/Mohammad8002/THE-GRAM/internal/models"
)

// Envelope frames an outbound payload with its event name.
type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Dispatcher delivers events to a user's live session, if one exists.
// Delivery is fire-and-forget: no session, a full buffer or a closed socket
// all drop the event silently, and nothing is queued for later.
type Dispatcher struct {
	registry *Registry
}

// NewDispatcher creates a Dispatcher over the given registry
func NewDispatcher(registry *Registry) *Dispatcher {
	return &Dispatcher{registry: registry}
}

// Dispatch pushes a notification event to the target user's live session
// under the "notification" event name.
func (d *Dispatcher) Dispatch(targetUserID string, event models.NotificationEvent) {
	d.Push(targetUserID, "notification", event)
}

// Push sends an arbitrary payload under the given event name. Never returns
// an error: transport problems must not reach the business operation that
// triggered the push.
func (d *Dispatcher) Push(targetUserID, eventName string, payload any) {
	client, ok := d.registry.ClientFor(targetUserID)
	if !ok {
		return
	}

	message, err := json.Marshal(Envelope{Event: eventName, Data: payload})
	if err != nil {
		log.Printf("realtime: marshal %q event for user %s: %v", eventName, targetUserID, err)
		return
	}

	if !client.TrySend(message) {
		log.Printf("realtime: dropped %q event for user %s (session backed up or closed)", eventName, targetUserID)
	}
}
