package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/godfreydekew/car-parking-crm/internal/domain/models"
)

// Action is a staff-initiated booking lifecycle operation. There is no action
// producing OVERSTAY: that status is set by whatever evaluates "now vs.
// expected pick-up" outside this layer, and is only ever read here.
type Action string

const (
	ActionCheckIn    Action = "check_in"
	ActionCollect    Action = "collect"
	ActionCancel     Action = "cancel"
	ActionMarkNoShow Action = "mark_no_show"
)

// InvalidTransitionError is returned as a value, not panicked: illegal
// requests are expected, frequent and part of normal control flow.
type InvalidTransitionError struct {
	From   models.Status
	Action Action
}

func (e InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s booking with status %s", e.Action, e.From)
}

// TransitionIntent is the computed outcome of a legal transition: the new
// status, the timestamps it sets and the activity entry it appends. The
// caller sends the intent to the gateway; this layer performs no I/O.
type TransitionIntent struct {
	From          models.Status
	To            models.Status
	CheckInTime   *time.Time
	CollectedTime *time.Time
	Activity      models.ActivityEvent
}

type transitionRule struct {
	from     []models.Status
	to       models.Status
	activity models.ActivityType
	describe func(from, to models.Status) string
}

// Legal transitions. Terminal states (COLLECTED, CANCELLED, NO_SHOW) appear in
// no rule's from set, so nothing moves out of them.
var transitions = map[Action]transitionRule{
	ActionCheckIn: {
		from:     []models.Status{models.StatusBooked},
		to:       models.StatusOnSite,
		activity: models.ActivityCheckIn,
		describe: func(models.Status, models.Status) string { return "Vehicle checked in" },
	},
	ActionCollect: {
		from:     []models.Status{models.StatusOnSite, models.StatusOverstay},
		to:       models.StatusCollected,
		activity: models.ActivityCollected,
		describe: func(models.Status, models.Status) string { return "Vehicle collected by customer" },
	},
	ActionCancel: {
		from:     []models.Status{models.StatusBooked},
		to:       models.StatusCancelled,
		activity: models.ActivityStatusChanged,
		describe: describeStatusChange,
	},
	ActionMarkNoShow: {
		from:     []models.Status{models.StatusBooked},
		to:       models.StatusNoShow,
		activity: models.ActivityStatusChanged,
		describe: describeStatusChange,
	},
}

func describeStatusChange(from, to models.Status) string {
	return fmt.Sprintf("Status changed from %s to %s", from, to)
}

// ApplyTransition decides whether action is legal from the booking's current
// status and computes the intended side effects. Pure pre-check: the gateway
// remains the authority and re-validates on its side; this exists to avoid a
// round-trip for obviously invalid requests.
func ApplyTransition(b models.Booking, action Action, now time.Time) (TransitionIntent, error) {
	rule, ok := transitions[action]
	if !ok {
		return TransitionIntent{}, ValidationError{Field: "action", Msg: fmt.Sprintf("unknown action %q", action)}
	}

	allowed := false
	for _, from := range rule.from {
		if b.Status == from {
			allowed = true
			break
		}
	}
	if !allowed {
		return TransitionIntent{}, InvalidTransitionError{From: b.Status, Action: action}
	}

	intent := TransitionIntent{
		From: b.Status,
		To:   rule.to,
		Activity: models.ActivityEvent{
			ID:          uuid.New().String(),
			Type:        rule.activity,
			Description: rule.describe(b.Status, rule.to),
			Timestamp:   now,
		},
	}

	switch action {
	case ActionCheckIn:
		t := now
		intent.CheckInTime = &t
	case ActionCollect:
		t := now
		intent.CollectedTime = &t
	}

	return intent, nil
}

// ActionForStatus maps a requested target status to the lifecycle action that
// produces it, for callers that speak in statuses (the status endpoint).
// Only CANCELLED and NO_SHOW are reachable this way; other statuses are the
// result of dedicated operations or of the overstay sweep outside this layer.
func ActionForStatus(target models.Status) (Action, error) {
	switch target {
	case models.StatusCancelled:
		return ActionCancel, nil
	case models.StatusNoShow:
		return ActionMarkNoShow, nil
	default:
		return "", ValidationError{Field: "status", Msg: fmt.Sprintf("status %s cannot be set directly", target)}
	}
}
