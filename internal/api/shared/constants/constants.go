package constants

const (
	MAX_TASK_NUMBER       = 2
	MAX_TASK_NAME_LENGTH  = 128
	DEFAULT_TOP_REFERRERS = 5
	MAX_TOP_REFERRERS     = 50
	HEALTH_STATUS_OK      = "ok"
	REQUEST_ID_HEADER     = "X-Request-ID"
)
