package ports

// MetricsRecorder puerto de métricas de negocio.
type MetricsRecorder interface {
	OrderCreated(companyID string)
	OrderShipped(companyID string, units int)
	SupplyCompleted(companyID, orderType string, units int)
	ScanRecorded(result string)
	QualityAnalyzed(status string)
	NotificationEmitted(notificationType string)
	ReminderGenerated(companyID string)
	AICall(function string, ok bool)
}

// NopMetrics implementación vacía para tests y para METRICS_ENABLED=false.
type NopMetrics struct{}

var _ MetricsRecorder = NopMetrics{}

func (NopMetrics) OrderCreated(string)                 {}
func (NopMetrics) OrderShipped(string, int)            {}
func (NopMetrics) SupplyCompleted(string, string, int) {}
func (NopMetrics) ScanRecorded(string)                 {}
func (NopMetrics) QualityAnalyzed(string)              {}
func (NopMetrics) NotificationEmitted(string)          {}
func (NopMetrics) ReminderGenerated(string)            {}
func (NopMetrics) AICall(string, bool)                 {}
