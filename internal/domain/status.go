package domain

import "time"

// TradingState is the lifecycle state of the trading engine.
type TradingState string

const (
	StateIdle    TradingState = "IDLE"
	StateRunning TradingState = "RUNNING"
	StateHalted  TradingState = "HALTED"
)

// HaltReason explains why trading entered the Halted state.
type HaltReason string

const (
	HaltManualStop       HaltReason = "MANUAL_STOP"
	HaltThresholdReached HaltReason = "THRESHOLD_REACHED"
	HaltFaultyOrder      HaltReason = "FAULTY_ORDER"
)

// Error codes recorded on the status when something goes wrong.
const (
	ErrCodeConnectionFailed = "CONNECTION_FAILED"
	ErrCodeWebsocketError   = "WEBSOCKET_ERROR"
)

// StatusError is the last error recorded on the trading status.
type StatusError struct {
	Code    string    `json:"code"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// TradingStatus is the process-wide trading state record.
type TradingStatus struct {
	State     TradingState `json:"state"`
	Reason    HaltReason   `json:"reason,omitempty"` // Set only when Halted
	Since     time.Time    `json:"since"`            // State entry time
	LastError *StatusError `json:"last_error,omitempty"`
}

// NewIdleStatus returns the initial status.
func NewIdleStatus(now time.Time) TradingStatus {
	return TradingStatus{State: StateIdle, Since: now}
}
