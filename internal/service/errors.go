package service

import "errors"

// Shared service errors. The leading five digits are the business code the
// handler layer puts on the response envelope.
var (
	errStatementNotFound = errors.New("40401:statement not found")
	errAlreadyPromoted   = errors.New("40901:statement already belongs to a case")
)
