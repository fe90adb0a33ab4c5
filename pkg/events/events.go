// Package events defines the portal's domain events that drive workflow
// automation.
package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/models"
)

type EventType string

// Topic is the single stream all automation events travel on.
const Topic = "portal.automation.events"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	BeneficiaryCreatedEvent      EventType = "beneficiary.created"
	DonationReceivedEvent        EventType = "donation.received"
	AidApplicationSubmittedEvent EventType = "aid_application.submitted"
	TaskAssignedEvent            EventType = "task.assigned"
	MeetingScheduledEvent        EventType = "meeting.scheduled"
	DeadlineApproachingEvent     EventType = "deadline.approaching"
	CustomEvent                  EventType = "custom"
)

// eventTriggers maps each event type to the workflow trigger it fires.
var eventTriggers = map[EventType]models.WorkflowTrigger{
	BeneficiaryCreatedEvent:      models.TriggerBeneficiaryCreated,
	DonationReceivedEvent:        models.TriggerDonationReceived,
	AidApplicationSubmittedEvent: models.TriggerAidApplicationSubmitted,
	TaskAssignedEvent:            models.TriggerTaskAssigned,
	MeetingScheduledEvent:        models.TriggerMeetingScheduled,
	DeadlineApproachingEvent:     models.TriggerDeadlineApproaching,
	CustomEvent:                  models.TriggerCustom,
}

// Trigger returns the workflow trigger fired by this event type.
func (t EventType) Trigger() (models.WorkflowTrigger, bool) {
	trigger, ok := eventTriggers[t]

	return trigger, ok
}

// Known reports whether the event type belongs to the automation vocabulary.
func (t EventType) Known() bool {
	_, ok := eventTriggers[t]

	return ok
}

// Types lists every known event type.
func Types() []EventType {
	types := make([]EventType, 0, len(eventTriggers))
	for eventType := range eventTriggers {
		types = append(types, eventType)
	}

	return types
}

type BaseEvent struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// DomainEvent is one occurrence in the portal (a new beneficiary, a received
// donation). Payload becomes the trigger input of every workflow it fans out
// to.
type DomainEvent struct {
	BaseEvent

	Payload map[string]any `json:"payload,omitempty"`
}

func (e DomainEvent) GetType() EventType {
	return e.Type
}

// NewDomainEvent builds an event with a fresh ID and timestamp.
func NewDomainEvent(eventType EventType, payload map[string]any) DomainEvent {
	return DomainEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      eventType,
			Timestamp: time.Now().UTC(),
		},
		Payload: payload,
	}
}
