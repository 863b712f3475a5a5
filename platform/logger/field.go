package logger

import "go.uber.org/zap"

type Field = zap.Field

// Field constructors, so callers never import zap themselves.
var (
	String = zap.String
	Int    = zap.Int
	Bool   = zap.Bool
	ErrorF = zap.Error
)
