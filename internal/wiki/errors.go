package wiki

import (
	"fmt"
	"strings"
)

// DataError carries the messages reported by the data service
type DataError struct {
	Messages []string
}

// NewDataError creates a DataError from one or more messages
func NewDataError(messages ...string) *DataError {
	return &DataError{Messages: messages}
}

func (e *DataError) Error() string {
	return fmt.Sprintf("data service returned %d error(s): %s", len(e.Messages), strings.Join(e.Messages, "; "))
}
