package log

const (
	// Request
	FieldRequestID = "request_id"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldLatency   = "latency_ms"
	FieldClientIP  = "client_ip"

	// Actor, set by pkg/middleware after authentication
	FieldUserID = "user_id"

	// Entities
	FieldTargetID = "target_id"
	FieldPostID   = "post_id"
	FieldEvent    = "event"

	FieldService = "service"

	// Audit
	FieldLogType = "log_type"
	LogTypeAudit = "audit"
)
