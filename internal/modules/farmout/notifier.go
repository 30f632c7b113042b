// README: Notifier implementation: activity lines go to the structured log,
// refresh events go to Kafka for the dashboards that render them.
package farmout

import (
	"context"

	"go.uber.org/zap"

	"relialimo/internal/infra"
	"relialimo/internal/modules/driver"
	"relialimo/internal/modules/reservation"
	"relialimo/internal/types"
)

type EventNotifier struct {
	producer *infra.KafkaProducer
	topic    string
	log      *zap.SugaredLogger
}

func NewEventNotifier(producer *infra.KafkaProducer, topic string, log *zap.SugaredLogger) *EventNotifier {
	return &EventNotifier{producer: producer, topic: topic, log: log}
}

type refreshEvent struct {
	Kind          string `json:"kind"`
	ReservationID string `json:"reservation_id,omitempty"`
	Message       string `json:"message,omitempty"`
	FarmoutStatus string `json:"farmout_status,omitempty"`
	DriverCount   int    `json:"driver_count,omitempty"`
	MarkerCount   int    `json:"marker_count,omitempty"`
}

func (n *EventNotifier) LogActivity(ctx context.Context, reservationID types.ID, message string) {
	n.log.Infow("activity", "reservation_id", reservationID, "message", message)
	n.publish(ctx, string(reservationID), refreshEvent{
		Kind:          "activity",
		ReservationID: string(reservationID),
		Message:       message,
	})
}

func (n *EventNotifier) RefreshFarmoutPanel(ctx context.Context, r *reservation.Reservation) {
	if r == nil {
		return
	}
	n.publish(ctx, string(r.ID), refreshEvent{
		Kind:          "farmout_panel",
		ReservationID: string(r.ID),
		FarmoutStatus: r.FarmoutStatus,
	})
}

func (n *EventNotifier) RefreshDriverDirectory(ctx context.Context, drivers []driver.Driver) {
	n.publish(ctx, "driver_directory", refreshEvent{
		Kind:        "driver_directory",
		DriverCount: len(drivers),
	})
}

func (n *EventNotifier) RefreshMapMarkers(ctx context.Context, reservations []reservation.Reservation) {
	n.publish(ctx, "map_markers", refreshEvent{
		Kind:        "map_markers",
		MarkerCount: len(reservations),
	})
}

// publish is fire and forget; a broker outage must never stall propagation.
func (n *EventNotifier) publish(ctx context.Context, key string, ev refreshEvent) {
	if err := n.producer.Publish(ctx, n.topic, key, ev); err != nil {
		n.log.Warnw("publish refresh event", "kind", ev.Kind, "error", err)
	}
}
