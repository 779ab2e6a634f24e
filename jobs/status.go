package jobs

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

type Status int

const (
	Unknown Status = iota
	Init
	Accepted
	NoAvailableWorkers
	QueueFull
	Error
	Complete
)

func (s Status) String() string {
	switch s {
	case Init:
		return "Init"
	case Accepted:
		return "Accepted"
	case NoAvailableWorkers:
		return "NoAvailableWorkers"
	case QueueFull:
		return "QueueFull"
	case Error:
		return "Error"
	case Complete:
		return "Complete"
	default:
		return "Unknown"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	*s = StatusFromText(string(text))
	return nil
}

func StatusFromText(text string) Status {
	switch strings.ToLower(text) {
	default:
		return Unknown
	case "init":
		return Init
	case "accepted":
		return Accepted
	case "noavailableworkers":
		return NoAvailableWorkers
	case "queuefull":
		return QueueFull
	case "error":
		return Error
	case "complete":
		return Complete
	}
}

// Statuses are stored as text.

func (s Status) Value() (driver.Value, error) {
	return s.String(), nil
}

func (s *Status) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*s = StatusFromText(v)
	case []byte:
		*s = StatusFromText(string(v))
	default:
		return fmt.Errorf("cannot scan %T into jobs.Status", value)
	}
	return nil
}
