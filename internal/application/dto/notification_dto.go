package dto

import "time"

// NotificationResponse salida de una notificación.
type NotificationResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	Type        string    `json:"type"`
	TargetRoles []string  `json:"target_roles"`
	Date        time.Time `json:"date"`
	Read        bool      `json:"read"`
}

// NotificationListResponse listado con el contador de no leídas.
type NotificationListResponse struct {
	Items  []NotificationResponse `json:"items"`
	Unread int                    `json:"unread"`
}
