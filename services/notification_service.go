package services

import (
	"fmt"

	"property-dashboard-server/events"
	"property-dashboard-server/models"
)

// Notification channels consumed by the dashboard UI
const (
	ChannelMaintenance = "maintenance"
	ChannelAdmin       = "admin"
)

// NotificationMessage is the rendered notification payload
type NotificationMessage struct {
	Channel     string `json:"channel"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	WorkOrderID int64  `json:"work_order_id"`
}

// Notifier is the outbound notification collaborator. Delivery is
// best-effort; the core never consumes a result beyond logging.
type Notifier interface {
	NotifyNewWorkOrder(order *models.WorkOrder)
	NotifyWorkOrderCompleted(order *models.WorkOrder)
	NotifyWorkOrderOverdue(order *models.WorkOrder)
}

// NoopNotifier discards notifications
type NoopNotifier struct{}

func (NoopNotifier) NotifyNewWorkOrder(order *models.WorkOrder)       {}
func (NoopNotifier) NotifyWorkOrderCompleted(order *models.WorkOrder) {}
func (NoopNotifier) NotifyWorkOrderOverdue(order *models.WorkOrder)   {}

// BusNotifier renders notification templates and publishes them on the event
// bus; the WebSocket hub fans them out to connected dashboard clients.
type BusNotifier struct {
	bus *events.Bus
}

// NewBusNotifier creates a notifier publishing to the given bus
func NewBusNotifier(bus *events.Bus) *BusNotifier {
	return &BusNotifier{bus: bus}
}

func (n *BusNotifier) NotifyNewWorkOrder(order *models.WorkOrder) {
	n.bus.Publish(events.TopicNotification, NotificationMessage{
		Channel:     ChannelMaintenance,
		Type:        "maintenance_created",
		Title:       fmt.Sprintf("Nuova richiesta: %s", models.CategoryLabels[order.Category]),
		Body:        fmt.Sprintf("%s — priorità %s", order.Description, models.PriorityLabels[order.Priority]),
		WorkOrderID: order.ID,
	})
}

func (n *BusNotifier) NotifyWorkOrderCompleted(order *models.WorkOrder) {
	n.bus.Publish(events.TopicNotification, NotificationMessage{
		Channel:     ChannelAdmin,
		Type:        "maintenance_completed",
		Title:       fmt.Sprintf("Intervento completato: %s", models.CategoryLabels[order.Category]),
		Body:        fmt.Sprintf("%s — costo %.2f€", order.Description, order.CostOrEstimate()),
		WorkOrderID: order.ID,
	})
}

func (n *BusNotifier) NotifyWorkOrderOverdue(order *models.WorkOrder) {
	n.bus.Publish(events.TopicNotification, NotificationMessage{
		Channel:     ChannelMaintenance,
		Type:        "maintenance_overdue",
		Title:       fmt.Sprintf("Intervento in ritardo: %s", models.CategoryLabels[order.Category]),
		Body:        fmt.Sprintf("%s — previsto il %s", order.Description, order.ScheduledDate),
		WorkOrderID: order.ID,
	})
}
