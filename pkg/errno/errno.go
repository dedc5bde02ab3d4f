package errno

import (
	"errors"
	"fmt"

	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const (
	SuccessCode             = 0
	ServiceErrCode          = 10001
	ParamErrCode            = 10002
	UserAlreadyExistErrCode = 10003
	AuthorizationFailedCode = 10004
	TokenInvailedErrCode    = 10005
	NotFoundErrCode         = 10006
	ForbiddenErrCode        = 10007
	InvalidOperationErrCode = 10008
	ConflictErrCode         = 10009
	MysqlErrCode            = 10010
	UploadErrCode           = 10011
	RateLimitErrCode        = 10012
)

type ErrNo struct {
	ErrCode int64
	ErrMsg  string
}

func (e ErrNo) Error() string {
	return fmt.Sprintf("err_code=%d, err_msg=%s", e.ErrCode, e.ErrMsg)
}

func NewErrNo(code int64, msg string) ErrNo {
	return ErrNo{code, msg}
}

func (e ErrNo) WithMessage(msg string) ErrNo {
	e.ErrMsg = msg
	return e
}

var (
	Success                = NewErrNo(SuccessCode, "Success")
	ServiceErr             = NewErrNo(ServiceErrCode, "Service is unable to start successfully")
	ParamErr               = NewErrNo(ParamErrCode, "Wrong Parameter has been given")
	UserAlreadyExistErr    = NewErrNo(UserAlreadyExistErrCode, "User already exists")
	AuthorizationFailedErr = NewErrNo(AuthorizationFailedCode, "Invalid credentials")
	TokenInvailedErr       = NewErrNo(TokenInvailedErrCode, "Token is invalid or missing")
	NotFoundErr            = NewErrNo(NotFoundErrCode, "Resource not found")
	ForbiddenErr           = NewErrNo(ForbiddenErrCode, "Operation not permitted")
	InvalidOperationErr    = NewErrNo(InvalidOperationErrCode, "Invalid operation")
	ConflictErr            = NewErrNo(ConflictErrCode, "Concurrent modification")
	MysqlErr               = NewErrNo(MysqlErrCode, "Storage failure")
	UploadErr              = NewErrNo(UploadErrCode, "Upload failed")
	RateLimitErr           = NewErrNo(RateLimitErrCode, "Too many requests")

	VideoNotFoundErr = NotFoundErr.WithMessage("Video not found")
	UserNotFoundErr  = NotFoundErr.WithMessage("User not found")
	SelfSubscribeErr = InvalidOperationErr.WithMessage("You cannot subscribe to your own channel")
	ReactionTypeErr  = InvalidOperationErr.WithMessage("Reaction type must be like or dislike")
	NotVideoOwnerErr = ForbiddenErr.WithMessage("Only the owner can modify this video")
)

// ConvertErr convert error to Errno
// 未知错误统一转换为ServiceErr, 不向调用方暴露存储层细节
func ConvertErr(err error) ErrNo {
	if err == nil {
		return Success
	}
	Err := ErrNo{}
	if errors.As(err, &Err) {
		return Err
	}
	return ServiceErr.WithMessage("Server error")
}

// HTTPStatus 将错误码映射为HTTP状态码
func HTTPStatus(err error) int {
	switch ConvertErr(err).ErrCode {
	case SuccessCode:
		return consts.StatusOK
	case ParamErrCode, InvalidOperationErrCode, UserAlreadyExistErrCode, UploadErrCode:
		return consts.StatusBadRequest
	case AuthorizationFailedCode, TokenInvailedErrCode:
		return consts.StatusUnauthorized
	case ForbiddenErrCode:
		return consts.StatusForbidden
	case NotFoundErrCode:
		return consts.StatusNotFound
	case ConflictErrCode:
		return consts.StatusConflict
	case RateLimitErrCode:
		return consts.StatusTooManyRequests
	default:
		return consts.StatusInternalServerError
	}
}
