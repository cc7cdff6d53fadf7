package economy

import "time"

// ==================== Defaults ====================

const (
	// DefaultPassiveIncomeAmount is credited once per passive interval
	DefaultPassiveIncomeAmount = 1

	// DefaultPassiveIncomeInterval is the wall-clock cadence of passive income
	DefaultPassiveIncomeInterval = time.Second
)

// ==================== Log Messages ====================

const (
	LogMsgCreditIgnored = "Ignoring non-positive credit"
	LogMsgDebitIgnored  = "Ignoring non-positive debit"
	LogMsgDebitDeclined = "Debit declined: insufficient funds"
	LogMsgPassiveIncome = "Passive income credited"
	LogMsgPublishFailed = "Failed to publish economy event"
)
