package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInput marks errors caused by the user's input. Nothing was fetched.
	ErrInput = errors.New("invalid input")
	// ErrUpstream marks errors caused by the GitHub API or its response.
	ErrUpstream = errors.New("upstream error")
)

type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return e.Reason
}

func (e *InputError) Is(target error) bool {
	return target == ErrInput
}

// UpstreamError wraps a failed call to the GitHub API.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}

// MissingFieldError reports a response that lacks a field the reducer needs.
// It counts as an upstream error.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("response is missing field %q", e.Field)
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrUpstream
}
