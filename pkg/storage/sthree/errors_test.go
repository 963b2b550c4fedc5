package sthree

import (
	stderr "errors"
	"testing"

	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/oneconcern/bommon/pkg/errors"
	"github.com/oneconcern/bommon/pkg/storage/status"
	"github.com/stretchr/testify/assert"
)

func TestToSentinelErrors(t *testing.T) {
	requestFailure := func(code string, statusCode int) error {
		return awserr.NewRequestFailure(awserr.New(code, "message", nil), statusCode, "request-id")
	}

	for _, toPin := range []struct {
		name     string
		err      error
		expected error
	}{
		{name: "no such key", err: requestFailure("NoSuchKey", 404), expected: status.ErrNotExists},
		{name: "head not found", err: requestFailure("NotFound", 404), expected: status.ErrNotExists},
		{name: "other 404", err: requestFailure("NoSuchUpload", 404), expected: status.ErrNotFound},
		{name: "invalid bucket", err: requestFailure("InvalidBucketName", 400), expected: status.ErrInvalidResource},
		{name: "bad request", err: requestFailure("InvalidArgument", 400), expected: status.ErrStorageAPI},
		{name: "unauthorized", err: requestFailure("Unauthorized", 401), expected: status.ErrUnauthorized},
		{name: "forbidden", err: requestFailure("AccessDenied", 403), expected: status.ErrForbidden},
		{name: "precondition", err: requestFailure("PreconditionFailed", 412), expected: status.ErrExists},
		{name: "server", err: requestFailure("InternalError", 500), expected: status.ErrStorageAPI},
	} {
		testCase := toPin
		t.Run(testCase.name, func(t *testing.T) {
			assert.True(t, errors.Is(toSentinelErrors(testCase.err), testCase.expected))
		})
	}

	assert.NoError(t, toSentinelErrors(nil))
	other := stderr.New("other")
	assert.Equal(t, other, toSentinelErrors(other))

	assert.NoError(t, filterErrNotExists(toSentinelErrors(requestFailure("NoSuchKey", 404))))
	assert.Error(t, filterErrNotExists(toSentinelErrors(requestFailure("AccessDenied", 403))))
}
