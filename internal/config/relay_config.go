package config

import "time"

const (
	// History
	RecentHistoryLimit = 50

	// WebSocket connection tuning
	WriteWait      = 10 * time.Second
	PongWait       = 60 * time.Second
	PingPeriod     = (PongWait * 9) / 10
	MaxMessageSize = 4096

	// SendBufferSize is the per-session outbound envelope buffer. A
	// session whose buffer is full gets dropped as a slow consumer.
	SendBufferSize = 256
)
