package errors

type Code string

const (
	CodeUnknown          Code = "UNKNOWN"
	CodeInternal         Code = "INTERNAL_ERROR"
	CodeConfigValidation Code = "CONFIG_VALIDATION_ERROR"
	CodeConfigReadError  Code = "CONFIG_READ_ERROR"
	CodeConfigParseError Code = "CONFIG_PARSE_ERROR"

	// Desired state loading
	CodeDesiredStateRead  Code = "DESIRED_STATE_READ_ERROR"
	CodeDesiredStateParse Code = "DESIRED_STATE_PARSE_ERROR"
	CodeTemplateRender    Code = "TEMPLATE_RENDER_ERROR"
	CodeHCLParseError     Code = "HCL_PARSE_ERROR"
	CodeHCLEvalError      Code = "HCL_EVAL_ERROR"

	// Inventory API
	CodePlatformAPIError  Code = "PLATFORM_API_ERROR"
	CodePlatformAuthError Code = "PLATFORM_AUTH_ERROR"
	CodeResourceNotFound  Code = "RESOURCE_NOT_FOUND"
	CodeResponseDecode    Code = "RESPONSE_DECODE_ERROR"
	CodeTimeout           Code = "TIMEOUT_ERROR"

	CodeRemoteValidation Code = "REMOTE_VALIDATION_FAILURE"
	CodeNotImplemented   Code = "NOT_IMPLEMENTED"
	CodeReportError      Code = "REPORT_ERROR"
)

func (c Code) String() string {
	return string(c)
}
