package domain

type GateState string

const (
	GateLocked   GateState = "locked"
	GateVerified GateState = "verified"
	GateActive   GateState = "active"
)
