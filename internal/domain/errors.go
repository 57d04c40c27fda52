package domain

import (
	"fmt"
	"strings"
)

// ErrConfigMissing signals a required secret that was not provided.
type ErrConfigMissing struct {
	Key string
}

func (e ErrConfigMissing) Error() string {
	return e.Key + " is not set"
}

// ErrUpstreamUnavailable covers network failures and non-2xx upstream replies.
type ErrUpstreamUnavailable struct {
	Source string
	Status int
	Cause  error
}

func (e ErrUpstreamUnavailable) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s unavailable: %v", e.Source, e.Cause)
	}
	return fmt.Sprintf("%s failed with status %d", e.Source, e.Status)
}

func (e ErrUpstreamUnavailable) Unwrap() error {
	return e.Cause
}

// ErrUpstreamFormat means the upstream replied but the expected structure was
// not there.
type ErrUpstreamFormat struct {
	Source string
	Detail string
}

func (e ErrUpstreamFormat) Error() string {
	return fmt.Sprintf("%s: %s", e.Source, e.Detail)
}

// ErrCurrencyNotFound lists every code the upstream did quote, for caller
// diagnostics.
type ErrCurrencyNotFound struct {
	Code      string
	Available []string
}

func (e ErrCurrencyNotFound) Error() string {
	return fmt.Sprintf("currency %s not found (available: %s)", e.Code, strings.Join(e.Available, ", "))
}
