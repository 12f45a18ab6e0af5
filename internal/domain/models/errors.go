package models

import (
	"fmt"
	"strings"
)

// ConfigurationError reports malformed or inconsistent startup configuration.
type ConfigurationError struct {
	Problems []string
}

func (e *ConfigurationError) Error() string {
	return "invalid configuration: " + strings.Join(e.Problems, "; ")
}

// UpstreamError reports a failed call to the market-data provider.
//
// Status is the HTTP status code when one was received, 0 otherwise.
// URL never contains the API key.
type UpstreamError struct {
	Op     string
	Ticker Ticker
	Day    TradingDay
	URL    string
	Status int
	Err    error
}

func (e *UpstreamError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "upstream %s %s@%s", e.Op, e.Ticker, e.Day)
	if e.Status != 0 {
		fmt.Fprintf(&b, ": status %d", e.Status)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// UnknownTickerError reports company names missing from the configuration table.
type UnknownTickerError struct {
	Names []string
}

func (e *UnknownTickerError) Error() string {
	return "unknown company: " + strings.Join(e.Names, ", ")
}

// ValidationError reports a caller contract violation (e.g., a non-positive window).
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
