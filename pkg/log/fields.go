package log

const (
	// Request
	FieldRequestID = "request_id"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldLatency   = "latency_ms"
	FieldClientIP  = "client_ip"

	// Messaging
	FieldChannel = "channel"
	FieldUser    = "user"
	FieldConnID  = "conn_id"

	// Service
	FieldService = "service"
)
