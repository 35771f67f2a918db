package service

import "errors"

// Validation errors: surfaced immediately, no retry.
var (
	ErrUsernameRequired        = errors.New("username is required")
	ErrContactRequired         = errors.New("contact information is required")
	ErrIssueRequired           = errors.New("issue description is required")
	ErrBuyerRequired           = errors.New("buyer username is required")
	ErrTemplateIDRequired      = errors.New("template id is required")
	ErrTemplateTitleRequired   = errors.New("template title is required")
	ErrPickupDateRequired      = errors.New("pickup date is required")
	ErrPickupDateNotSelectable = errors.New("pickup date is not an available pickup day")
)

// Conflict errors: the operation aborts with no partial mutation.
var (
	ErrTemplateNotFound  = errors.New("template not found")
	ErrTemplateSold      = errors.New("template already purchased")
	ErrReservationExists = errors.New("purchase request already pending for this template")
)

// ErrNotifierFailed marks a retryable delivery failure. Local state is left
// untouched when it is returned.
var ErrNotifierFailed = errors.New("notification delivery failed")

// Draft workflow errors.
var (
	ErrNoDraft       = errors.New("no purchase draft in progress")
	ErrDraftNotReady = errors.New("purchase draft is not ready for this step")
)
