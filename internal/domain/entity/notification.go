package entity

import "time"

// Severidad de la notificación.
const (
	NotificationInfo    = "INFO"
	NotificationSuccess = "SUCCESS"
	NotificationAlert   = "ALERT"
)

// Notification mensaje interno dirigido a departamentos (roles de texto libre, no autorización).
type Notification struct {
	ID          string
	CompanyID   string
	Title       string
	Message     string
	Type        string
	TargetRoles []string
	Date        time.Time
	Read        bool
}
