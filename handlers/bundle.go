package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Trip planning endpoints
	SubmitTripHandler   gin.HandlerFunc
	ReplyHandler        gin.HandlerFunc
	SelectFlightHandler gin.HandlerFunc
	FeedbackHandler     gin.HandlerFunc

	// Read endpoints
	GetSessionHandler    gin.HandlerFunc
	GetJobHandler        gin.HandlerFunc
	SessionEventsHandler gin.HandlerFunc

	// Voice endpoint
	TranscribeHandler gin.HandlerFunc

	// Push registration
	RegisterPushTokenHandler gin.HandlerFunc
}

// DefaultHandlerBundle wires the package-level handlers.
func DefaultHandlerBundle() *HandlerBundle {
	return &HandlerBundle{
		SubmitTripHandler:   SubmitTripHandler,
		ReplyHandler:        ReplyHandler,
		SelectFlightHandler: SelectFlightHandler,
		FeedbackHandler:     FeedbackHandler,

		GetSessionHandler:    GetSessionHandler,
		GetJobHandler:        GetJobHandler,
		SessionEventsHandler: SessionEventsHandler,

		TranscribeHandler: TranscribeHandler,

		RegisterPushTokenHandler: RegisterPushTokenHandler,
	}
}
