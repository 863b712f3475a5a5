package model

import "errors"

var (
	ErrUnknownSlot             = errors.New("unknown component slot")
	ErrInvalidArgument         = errors.New("invalid argument")
	ErrCompareFull             = errors.New("compare list is full")
	ErrCompareCategoryMismatch = errors.New("compare list holds another category")
	ErrCompareDuplicate        = errors.New("product already in compare list")
	ErrRecordWithoutID         = errors.New("record has no id")
	ErrWriterClosed            = errors.New("snapshot writer closed")
)
