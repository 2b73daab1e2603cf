package analyzer

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"

	"github.com/openai/openai-go"

	"github.com/sozercan/markdown-analyzer/internal/apierror"
)

// classify maps an upstream call failure onto the error taxonomy. The first
// matching category wins: timeouts before transport failures, structured API
// errors by their carried status, everything else is internal.
func classify(err error) *apierror.Error {
	var apierr *openai.Error

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return apierror.NewTimeout(err.Error())

	case isNetTimeout(err):
		return apierror.NewTimeout(err.Error())

	case errors.As(err, &apierr):
		// Message is read off the struct instead of Error(); the latter
		// needs the request/response pair populated.
		switch apierr.StatusCode {
		case http.StatusTooManyRequests:
			return apierror.NewRateLimited(apierr.Message)
		case http.StatusUnauthorized:
			return apierror.NewAuthFailure(apierr.Message)
		default:
			return apierror.NewUpstream(apierr.StatusCode, apierr.Message)
		}

	case isTransportFailure(err):
		return apierror.NewConnectionFailure(err.Error())

	default:
		return apierror.NewInternal(err.Error())
	}
}

func isNetTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// isTransportFailure reports whether the request never completed a round
// trip: dial errors, resets, DNS failures. Timeouts are handled first, so
// anything left wrapping a net or url error could not establish a connection.
func isTransportFailure(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}
