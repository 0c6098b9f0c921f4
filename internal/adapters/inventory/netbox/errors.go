package netbox

import (
	"context"
	stderrs "errors"
	"fmt"
	"net"
	"net/http"
	"net/url"

	"github.com/olusolaa/netbox-reconciler/internal/errors"
)

// handleTransportError maps a failure to obtain any HTTP response at all
// onto an application error code.
func handleTransportError(ctx context.Context, method, endpoint string, err error) error {
	if err == nil {
		return errors.New(errors.CodeInternal, fmt.Sprintf("unexpected nil error in transport handler for %s %s", method, endpoint))
	}

	if stderrs.Is(err, context.DeadlineExceeded) {
		return errors.Wrap(err, errors.CodeTimeout,
			fmt.Sprintf("inventory API request %s %s timed out", method, endpoint))
	}
	if ctx.Err() != nil || stderrs.Is(err, context.Canceled) {
		return errors.Wrap(err, errors.CodePlatformAPIError,
			fmt.Sprintf("context canceled during inventory API request %s %s", method, endpoint))
	}

	var dnsErr *net.DNSError
	if stderrs.As(err, &dnsErr) {
		return errors.WrapUserFacing(err, errors.CodePlatformAPIError,
			fmt.Sprintf("cannot resolve inventory API host %q", dnsErr.Name),
			"Check the url parameter.")
	}

	var netErr net.Error
	if stderrs.As(err, &netErr) && netErr.Timeout() {
		return errors.Wrap(err, errors.CodeTimeout,
			fmt.Sprintf("inventory API request %s %s timed out", method, endpoint))
	}

	var urlErr *url.Error
	if stderrs.As(err, &urlErr) {
		return errors.WrapUserFacing(err, errors.CodePlatformAPIError,
			"failed to connect to the inventory API",
			"Check that the url is reachable from this host.")
	}

	return errors.Wrap(err, errors.CodePlatformAPIError,
		fmt.Sprintf("inventory API request %s %s failed", method, endpoint))
}

// statusError classifies HTTP statuses that are transport failures rather
// than answers about the object. Validation errors (400) and missing objects
// (404) are answers and return nil.
func statusError(method, endpoint string, status int, body []byte) error {
	detail := summarizeBody(body)
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return errors.WrapUserFacing(
			fmt.Errorf("%s %s: HTTP %d: %s", method, endpoint, status, detail),
			errors.CodePlatformAuthError,
			"the inventory API rejected the request credentials",
			"Check that the token is valid and has write permission for this object type.")
	case status >= http.StatusInternalServerError:
		return errors.Wrap(
			fmt.Errorf("%s %s: HTTP %d: %s", method, endpoint, status, detail),
			errors.CodePlatformAPIError,
			"inventory API server error")
	default:
		return nil
	}
}

func summarizeBody(body []byte) string {
	const maxLen = 200
	if len(body) == 0 {
		return "<empty body>"
	}
	s := string(body)
	if len(s) > maxLen {
		return s[:maxLen-3] + "..."
	}
	return s
}
