package organizer

import (
	"errors"
	"fmt"
	"os"
	"syscall"
)

// ErrDirectoryNotFound aborts a pass before any entry is touched.
var ErrDirectoryNotFound = errors.New("downloads directory not found")

// Op identifies which step failed on an entry.
type Op string

const (
	OpStat  Op = "stat"
	OpPlan  Op = "plan"
	OpMove  Op = "move"
	OpTrash Op = "trash"
)

// ErrorReason categorizes why an entry operation failed
type ErrorReason int

const (
	ErrorPermissionDenied ErrorReason = iota
	ErrorFileInUse
	ErrorFileNotFound
	ErrorDestinationTaken
	ErrorUnknown
)

// String returns a human-readable error reason
func (e ErrorReason) String() string {
	switch e {
	case ErrorPermissionDenied:
		return "Permission denied"
	case ErrorFileInUse:
		return "File is in use"
	case ErrorFileNotFound:
		return "File not found"
	case ErrorDestinationTaken:
		return "Destination taken"
	case ErrorUnknown:
		return "Unknown error"
	default:
		return "Unspecified error"
	}
}

// EntryError represents a detailed per-entry failure. The pass records
// it and moves on; nothing per-entry is fatal.
type EntryError struct {
	Path      string
	Op        Op
	Reason    ErrorReason
	Original  error
	Retryable bool
}

// Error implements the error interface
func (e *EntryError) Error() string {
	return fmt.Sprintf("%s %s: %s (%v)", e.Op, e.Path, e.Reason, e.Original)
}

// Unwrap exposes the underlying cause
func (e *EntryError) Unwrap() error {
	return e.Original
}

// UserMessage returns a user-friendly error message
func (e *EntryError) UserMessage() string {
	switch e.Reason {
	case ErrorPermissionDenied:
		return fmt.Sprintf("⚠️  Permission denied: %s", e.Path)
	case ErrorFileInUse:
		return fmt.Sprintf("⚠️  File is being used: %s (close the application and try again)", e.Path)
	case ErrorFileNotFound:
		return fmt.Sprintf("ℹ️  Already gone: %s", e.Path)
	case ErrorDestinationTaken:
		return fmt.Sprintf("⚠️  Destination already exists for: %s", e.Path)
	default:
		return fmt.Sprintf("❌ Error handling %s: %v", e.Path, e.Original)
	}
}

// CategorizeError analyzes an error and returns a categorized EntryError
func CategorizeError(path string, op Op, err error) *EntryError {
	if err == nil {
		return nil
	}

	entryErr := &EntryError{
		Path:     path,
		Op:       op,
		Original: err,
		Reason:   ErrorUnknown,
	}

	// Check if file not found
	if os.IsNotExist(err) {
		entryErr.Reason = ErrorFileNotFound
		return entryErr
	}

	// Check if permission error
	if os.IsPermission(err) {
		entryErr.Reason = ErrorPermissionDenied
		return entryErr
	}

	if os.IsExist(err) {
		entryErr.Reason = ErrorDestinationTaken
		return entryErr
	}

	// Check syscall errors
	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.EACCES, syscall.EPERM:
			entryErr.Reason = ErrorPermissionDenied
		case syscall.EBUSY, syscall.ETXTBSY:
			entryErr.Reason = ErrorFileInUse
			entryErr.Retryable = true
		case syscall.ENOENT:
			entryErr.Reason = ErrorFileNotFound
		case syscall.EEXIST, syscall.ENOTEMPTY:
			entryErr.Reason = ErrorDestinationTaken
		default:
			entryErr.Reason = ErrorUnknown
		}
		return entryErr
	}

	return entryErr
}

// GroupErrors groups entry errors by reason
func GroupErrors(errs []*EntryError) map[ErrorReason][]*EntryError {
	grouped := make(map[ErrorReason][]*EntryError)
	for _, err := range errs {
		grouped[err.Reason] = append(grouped[err.Reason], err)
	}
	return grouped
}

// FormatErrorSummary creates a user-friendly summary of errors
func FormatErrorSummary(errs []*EntryError) string {
	if len(errs) == 0 {
		return ""
	}

	grouped := GroupErrors(errs)
	summary := "\n⚠️  Issues encountered:\n"

	if perms, ok := grouped[ErrorPermissionDenied]; ok {
		summary += fmt.Sprintf("   ├─ Permission denied: %d entries\n", len(perms))
		summary += "   │  └─ Tip: Check ownership of the downloads folder\n"
	}

	if busy, ok := grouped[ErrorFileInUse]; ok {
		summary += fmt.Sprintf("   ├─ File in use: %d entries\n", len(busy))
		summary += "   │  └─ Tip: Close applications and rerun\n"
	}

	if notFound, ok := grouped[ErrorFileNotFound]; ok {
		summary += fmt.Sprintf("   ├─ Vanished before handling: %d entries\n", len(notFound))
	}

	if taken, ok := grouped[ErrorDestinationTaken]; ok {
		summary += fmt.Sprintf("   ├─ Destination conflicts: %d entries\n", len(taken))
		summary += "   │  └─ Tip: Rerun to retry with fresh names\n"
	}

	if unknown, ok := grouped[ErrorUnknown]; ok {
		summary += fmt.Sprintf("   └─ Other errors: %d entries\n", len(unknown))
	}

	return summary
}
