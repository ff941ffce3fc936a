package inbox

type ErrorCode string

const (
	ErrorCodeValidation ErrorCode = "validation_error"
	ErrorCodeNotFound   ErrorCode = "not_found"
	ErrorCodeConflict   ErrorCode = "conflict"
	ErrorCodeInternal   ErrorCode = "internal_error"
)

type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

type Tab string

const (
	TabActive   Tab = "active"
	TabArchived Tab = "archived"
)

// FilterUnassigned selects chats without an assignment when used as the
// Assignment dimension.
const FilterUnassigned = "unassigned"

// ChatFilter is the criteria value for the inbox list. An empty Assignment
// disables that dimension entirely; an empty LabelIDs set disables label
// filtering.
type ChatFilter struct {
	Tab        Tab
	Search     string
	LabelIDs   []string
	Assignment string // "" (off), "unassigned", or a staff id
}

type SnoozeParams struct {
	Preset string // a snooze preset name, or "custom"
	Date   string // YYYY-MM-DD, custom only
	Time   string // HH:MM, custom only
}
