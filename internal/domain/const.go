package domain

const (
	// Referral code constants
	REFERRAL_CODE_PREFIX   = "FSR"
	REFERRAL_CODE_LENGTH   = 6
	REFERRAL_CODE_ALPHABET = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// REFERRAL_PAYLOAD_PREFIX prefixes the code in /start deep-link payloads
	REFERRAL_PAYLOAD_PREFIX = "ref"

	// GIVEAWAY_TASK_COUNT is the number of tasks a user finishes to complete the giveaway
	GIVEAWAY_TASK_COUNT = 2

	// MAX_REFERRAL_CODE_ATTEMPTS bounds the generate-and-insert retry loop
	MAX_REFERRAL_CODE_ATTEMPTS = 20

	// Telegram chat member statuses that count as subscribed
	MEMBER_STATUS_MEMBER        = "member"
	MEMBER_STATUS_ADMINISTRATOR = "administrator"
	MEMBER_STATUS_CREATOR       = "creator"
)
