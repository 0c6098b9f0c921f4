package hclfile

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
)

// DiagnosticsError carries the HCL diagnostics of a failed parse or
// evaluation.
type DiagnosticsError struct {
	Operation string
	FilePath  string
	Diags     hcl.Diagnostics
}

func (e *DiagnosticsError) Error() string {
	return fmt.Sprintf("HCL %s error processing %q: %s", e.Operation, e.FilePath, e.Diags.Error())
}

type ValueConversionError struct {
	AttributeName string
	Err           error
}

func (e *ValueConversionError) Error() string {
	if e.AttributeName != "" {
		return fmt.Sprintf("error converting value for attribute %q: %v", e.AttributeName, e.Err)
	}
	return fmt.Sprintf("error converting cty value: %v", e.Err)
}

func (e *ValueConversionError) Unwrap() error { return e.Err }
