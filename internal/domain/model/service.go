package model

import (
	"errors"
	"fmt"
)

// ErrUnsupportedService is returned when a request names a service outside
// the fixed set of supported Google APIs.
var ErrUnsupportedService = errors.New("unsupported service")

// Service identifies one of the supported Google product APIs.
type Service string

const (
	ServiceYouTube  Service = "youtube"
	ServiceDrive    Service = "drive"
	ServiceSheets   Service = "sheets"
	ServiceCalendar Service = "calendar"
	ServiceGmail    Service = "gmail"
)

// ParseService validates a raw service name from a request body.
func ParseService(raw string) (Service, error) {
	switch Service(raw) {
	case ServiceYouTube, ServiceDrive, ServiceSheets, ServiceCalendar, ServiceGmail:
		return Service(raw), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedService, raw)
	}
}

// DisplayName returns the human-facing service name used in persisted
// result and error records ("YouTube", "Drive", ...).
func (s Service) DisplayName() string {
	switch s {
	case ServiceYouTube:
		return "YouTube"
	case ServiceDrive:
		return "Drive"
	case ServiceSheets:
		return "Sheets"
	case ServiceCalendar:
		return "Calendar"
	case ServiceGmail:
		return "Gmail"
	default:
		return string(s)
	}
}

// TestType selects which class of operation to exercise against a service.
type TestType string

const (
	TestTypeAuth  TestType = "auth"
	TestTypeRead  TestType = "read"
	TestTypeWrite TestType = "write"
)

// ParseTestType validates a raw test type from a request body.
func ParseTestType(raw string) (TestType, error) {
	switch TestType(raw) {
	case TestTypeAuth, TestTypeRead, TestTypeWrite:
		return TestType(raw), nil
	default:
		return "", fmt.Errorf("invalid test type %q", raw)
	}
}

// IncludesRead reports whether the test type exercises the read probe.
// Both "read" and "auth" issue the lightweight read call; "write" does not.
func (t TestType) IncludesRead() bool {
	return t == TestTypeRead || t == TestTypeAuth
}
