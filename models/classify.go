package models

import (
	"context"
	"errors"
	"net"
	"regexp"
	"strconv"

	"github.com/reagentlib/reagent"
)

// statusCoder is implemented by provider errors that expose the HTTP status
// directly.
type statusCoder interface {
	HTTPStatusCode() int
}

// LangChainGo wraps provider HTTP failures in plain formatted errors, so the
// status has to be fished out of the message when no typed accessor exists.
var statusRe = regexp.MustCompile(`status(?: code)?[:=]?\s*(\d{3})`)

// Classify converts a provider error into a *reagent.ClientError.
//
// Mapping:
//   - context deadline / network timeouts / connection errors → Transport
//   - 401, 403 → Auth
//   - 429 → RateLimit (Retry-After stays zero when the provider error does
//     not surface the header, which means it will not be retried)
//   - remaining 4xx → BadRequest
//   - 5xx and everything unidentifiable → Transport
//
// Errors that are already classified pass through unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var ce *reagent.ClientError
	if errors.As(err, &ce) {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &reagent.ClientError{Kind: reagent.KindTransport, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return &reagent.ClientError{Kind: reagent.KindTransport, Err: err}
	}

	if status, ok := statusOf(err); ok {
		return &reagent.ClientError{
			Kind:       kindForStatus(status),
			StatusCode: status,
			Err:        err,
		}
	}

	return &reagent.ClientError{Kind: reagent.KindTransport, Err: err}
}

func statusOf(err error) (int, bool) {
	var sc statusCoder
	if errors.As(err, &sc) {
		return sc.HTTPStatusCode(), true
	}
	if m := statusRe.FindStringSubmatch(err.Error()); m != nil {
		status, convErr := strconv.Atoi(m[1])
		if convErr == nil {
			return status, true
		}
	}
	return 0, false
}

func kindForStatus(status int) reagent.FailureKind {
	switch {
	case status == 401 || status == 403:
		return reagent.KindAuth
	case status == 429:
		return reagent.KindRateLimit
	case status >= 400 && status < 500:
		return reagent.KindBadRequest
	default:
		return reagent.KindTransport
	}
}
