package errors

import "errors"

var (
	ErrInvalidReportType = errors.New("unknown report type")
)
