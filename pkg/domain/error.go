package domain

import (
	"errors"
	"fmt"
)

type Error struct {
	orig error
	msg  string
	code error
}

func (e *Error) Error() string {
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}

	return e.msg
}

func (e *Error) Unwrap() error {
	return e.orig
}

func WrapErrorf(orig error, code error, format string, a ...interface{}) error {
	return &Error{
		code: code,
		orig: orig,
		msg:  fmt.Sprintf(format, a...),
	}
}

func (e *Error) Code() error {
	return e.code
}

// CodeOf returns the code of the first domain.Error in err's chain, or nil.
func CodeOf(err error) error {
	var derr *Error
	if errors.As(err, &derr) {
		return derr.code
	}
	return nil
}

var (
	// ErrInternal will throw if an unexpected read/write/encode failure happen
	ErrInternal = errors.New("internal error")
	// ErrInputNotFound will throw if the road shapefile does not exist
	ErrInputNotFound = errors.New("input file not found")
	// ErrMissingRoadClass will throw if the attribute table has no highway/fclass column
	ErrMissingRoadClass = errors.New("road class column not found")
	// ErrUnsupportedCRS will throw if the shapefile is not in geographic WGS84 coordinates
	ErrUnsupportedCRS = errors.New("unsupported coordinate reference system")
	// ErrBadParamInput will throw if the given options or speed profile are not valid
	ErrBadParamInput = errors.New("given Param is not valid")
)
