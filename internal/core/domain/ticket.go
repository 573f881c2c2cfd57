package domain

import (
	"time"

	"github.com/google/uuid"
)

// TicketStatus represents the lifecycle state of a ticket.
type TicketStatus string

const (
	StatusOpen       TicketStatus = "open"
	StatusInProgress TicketStatus = "in_progress"
	StatusEscalated  TicketStatus = "escalated"
	StatusResolved   TicketStatus = "resolved"
	StatusClosed     TicketStatus = "closed"
)

func (s TicketStatus) String() string {
	return string(s)
}

// Ticket is a support ticket as written by the intake process. This service
// only reads tickets.
type Ticket struct {
	ID                int64
	CreatedAt         time.Time
	ResolvedAt        *time.Time
	AmountSpent       float64
	PayoutPercent     float64
	FirstGameNo       int64
	LastGameNo        int64
	IsBot             bool
	IsEscalated       bool
	FirstResponseTime float64 // minutes
	AssignedTo        *uuid.UUID
	Status            TicketStatus
}
