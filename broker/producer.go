package broker

import (
	"encoding/json"
	"log"

	"tasknest/tasknest/config"

	"github.com/nats-io/nats.go"
)

var conn *nats.Conn

// InitProducer connects to NATS. The API runs without it; callers decide
// whether a failed connection is fatal.
func InitProducer(cfg config.Config) error {
	nc, err := nats.Connect(cfg.NatsURL, nats.Name("tasknest-api"))
	if err != nil {
		return err
	}
	conn = nc
	log.Printf("NATS producer connected to %s", cfg.NatsURL)
	return nil
}

// PublishEvent publishes a lifecycle event. Failures are logged, never
// surfaced; mutations must not fail because the broker is down.
func PublishEvent(event EventType, payload map[string]interface{}) {
	if conn == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event payload: %v", event, err)
		return
	}

	if err := conn.Publish(string(event), data); err != nil {
		log.Printf("Failed to publish %s event: %v", event, err)
	}
}

func CloseProducer() {
	if conn != nil {
		conn.Close()
		conn = nil
	}
}
