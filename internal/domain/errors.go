package domain

import "errors"

var (
	// ErrEmptyInput indicates a blank prompt or content before any remote call
	ErrEmptyInput = errors.New("input is empty")
	// ErrEmptyResponse indicates the provider returned blank text
	ErrEmptyResponse = errors.New("provider returned an empty response")
	// ErrParse indicates structured provider output could not be parsed
	ErrParse = errors.New("could not parse provider output")
	// ErrTransport indicates a network or provider failure
	ErrTransport = errors.New("provider request failed")
	// ErrNotFound indicates resource not found
	ErrNotFound = errors.New("resource not found")
	// ErrConversationBusy indicates a submission while a turn is still in flight
	ErrConversationBusy = errors.New("conversation is awaiting a response")
)
