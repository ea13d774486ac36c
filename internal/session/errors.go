// Package session orchestrates one tailoring run: extract the posting,
// tailor the CV, render documents and persist the artifacts.
package session

import "errors"

var (
	// ErrTailoringInFlight means a run is already active; runs never overlap
	ErrTailoringInFlight = errors.New("tailoring already in progress")
	// ErrNoJobDescription means the page yielded no usable description
	ErrNoJobDescription = errors.New("no job description found on page")
	// ErrNoUserDocument means no base CV has been stored yet
	ErrNoUserDocument = errors.New("no user CV stored")
	// ErrAutoTailorDisabled means the automatic trigger is switched off
	ErrAutoTailorDisabled = errors.New("auto-tailor is disabled")
)
