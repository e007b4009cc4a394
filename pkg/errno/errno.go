package errno

import (
	"errors"
	"fmt"
)

const (
	SuccessCode    = 0
	ServiceErrCode = iota + 10000
	ParamErrCode
	NotFoundErrCode
	ForbiddenErrCode
	ConflictErrCode
	MysqlErrCode
	RedisErrCode
	OssErrCode
	MqErrCode
)

type ErrNo struct {
	ErrCode int64
	ErrMsg  string
}

func (e ErrNo) Error() string {
	return fmt.Sprintf("err_code=%d, err_msg=%s", e.ErrCode, e.ErrMsg)
}

func NewErrNo(code int64, msg string) ErrNo {
	return ErrNo{ErrCode: code, ErrMsg: msg}
}

func (e ErrNo) WithMessage(msg string) ErrNo {
	e.ErrMsg = msg
	return e
}

var (
	Success    = NewErrNo(SuccessCode, "Success")
	ServiceErr = NewErrNo(ServiceErrCode, "Service is unable to start successfully")
	ParamErr   = NewErrNo(ParamErrCode, "Wrong Parameter has been given")
	// RequestErr is kept as an alias for ParamErr so call sites read the
	// same as validation failures on the request body.
	RequestErr   = NewErrNo(ParamErrCode, "Bad Request")
	NotFoundErr  = NewErrNo(NotFoundErrCode, "Resource does not exist")
	ForbiddenErr = NewErrNo(ForbiddenErrCode, "Operation not allowed for this user")
	ConflictErr  = NewErrNo(ConflictErrCode, "Resource conflict")
	MysqlErr     = NewErrNo(MysqlErrCode, "Mysql operation failed")
	RedisErr     = NewErrNo(RedisErrCode, "Redis operation failed")
	OssErr       = NewErrNo(OssErrCode, "Object storage operation failed")
	MqErr        = NewErrNo(MqErrCode, "Message queue operation failed")
)

// ConvertErr converts a plain error into ErrNo. An ErrNo anywhere in the
// wrap chain is returned as-is so the taxonomy survives errors.Wrapf.
func ConvertErr(err error) ErrNo {
	if err == nil {
		return Success
	}
	var e ErrNo
	if errors.As(err, &e) {
		return e
	}
	s := ServiceErr
	s.ErrMsg = err.Error()
	return s
}

// IsConflict reports whether err maps to the conflict kind (duplicate like,
// lost counter race surfaced to the caller).
func IsConflict(err error) bool {
	var e ErrNo
	return errors.As(err, &e) && e.ErrCode == ConflictErrCode
}

// IsNotFound reports whether err maps to the not-found kind.
func IsNotFound(err error) bool {
	var e ErrNo
	return errors.As(err, &e) && e.ErrCode == NotFoundErrCode
}
