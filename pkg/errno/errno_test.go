package errno

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestConvertErr(t *testing.T) {
	assert.Equal(t, Success, ConvertErr(nil))
	assert.Equal(t, VideoNotFoundErr, ConvertErr(VideoNotFoundErr))

	wrapped := errors.WithMessage(SelfSubscribeErr, "toggle subscription")
	assert.Equal(t, SelfSubscribeErr, ConvertErr(wrapped))

	wrappedStd := fmt.Errorf("delete video: %w", NotVideoOwnerErr)
	assert.Equal(t, NotVideoOwnerErr, ConvertErr(wrappedStd))

	opaque := ConvertErr(fmt.Errorf("dial tcp 127.0.0.1:3306: connection refused"))
	assert.Equal(t, int64(ServiceErrCode), opaque.ErrCode)
	assert.NotContains(t, opaque.ErrMsg, "3306")
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{nil, 200},
		{VideoNotFoundErr, 404},
		{UserNotFoundErr, 404},
		{TokenInvailedErr, 401},
		{NotVideoOwnerErr, 403},
		{SelfSubscribeErr, 400},
		{ReactionTypeErr, 400},
		{ParamErr, 400},
		{RateLimitErr, 429},
		{errors.New("boom"), 500},
	}
	for _, c := range cases {
		assert.Equal(t, c.status, HTTPStatus(c.err), "err=%v", c.err)
	}
}
