package common

// Settings keys persisted in the local key/value table.
const (
	KeySMSEnabled       = "sms_notifications_enabled"
	KeyMinimumInventory = "minimum_inventory_value"
	KeyNotifyAtZero     = "notify_inventory_zero"
	KeySessionToken     = "session_token"
	KeySessionSecret    = "session_secret"
)

// DefaultMinimumInventory is the low-stock threshold used until the user sets one.
const DefaultMinimumInventory = 2
