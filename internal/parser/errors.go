package parser

import (
	"errors"
	"fmt"
)

var (
	ErrParse        = errors.New("parse error")
	ErrMissingTitle = errors.New("title not found")
)

// ParseError reports markup that did not have the expected shape.
type ParseError struct {
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Field, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
