package conversation

import "fmt"

// ThreadNotFoundError is returned when a thread id has no live entry,
// it was never created, already expired, or was explicitly deleted.
type ThreadNotFoundError struct {
	ID string
}

func (e *ThreadNotFoundError) Error() string {
	return fmt.Sprintf("conversation: thread %q not found or expired", e.ID)
}
