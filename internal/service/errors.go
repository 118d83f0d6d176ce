package service

import "errors"

var (
	ErrValidation   = errors.New("missing required field")
	ErrNotFound     = errors.New("record not found")
	ErrUserExists   = errors.New("user name already exists")
	ErrReportLocked = errors.New("report is locked")
	ErrLLMRequest   = errors.New("llm request failed")
)
