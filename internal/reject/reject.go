// Package reject holds the business-rejection taxonomy for the booking
// admission decision. A Rejection is an expected, user-facing outcome; any
// other error coming out of a service is a storage or internal failure and
// is reported separately so clients know whether to pick another slot or
// retry later.
package reject

import (
	"errors"
	"fmt"
	"net/http"
)

type Code string

const (
	InvalidRange         Code = "invalid_range"
	DurationOutOfBounds  Code = "duration_out_of_bounds"
	TooFarInAdvance      Code = "too_far_in_advance"
	SlotNotFound         Code = "slot_not_found"
	SlotUnavailable      Code = "slot_unavailable"
	SlotReservedForOther Code = "slot_reserved_for_other"
	SlotAlreadyBooked    Code = "slot_already_booked"
	NotFound             Code = "not_found"
	TooLateToCancel      Code = "too_late_to_cancel"
)

type Rejection struct {
	Code    Code
	Message string
}

func (r *Rejection) Error() string {
	return r.Message
}

func New(code Code, format string, args ...any) *Rejection {
	return &Rejection{Code: code, Message: fmt.Sprintf(format, args...)}
}

// As unwraps err into a Rejection if it is one.
func As(err error) (*Rejection, bool) {
	var rej *Rejection
	if errors.As(err, &rej) {
		return rej, true
	}
	return nil, false
}

func Is(err error, code Code) bool {
	if rej, ok := As(err); ok {
		return rej.Code == code
	}
	return false
}

// HTTPStatus maps a rejection code to the response status used by the API
// layer. Validation problems are 422, missing targets 404, and everything
// the user could resolve by choosing a different slot or time is 409.
func (r *Rejection) HTTPStatus() int {
	switch r.Code {
	case InvalidRange, DurationOutOfBounds, TooFarInAdvance:
		return http.StatusUnprocessableEntity
	case SlotNotFound, NotFound:
		return http.StatusNotFound
	case SlotUnavailable, SlotReservedForOther, SlotAlreadyBooked, TooLateToCancel:
		return http.StatusConflict
	}
	return http.StatusBadRequest
}
