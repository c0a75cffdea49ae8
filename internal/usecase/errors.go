package usecase

import "errors"

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrLearningPathNotFound = errors.New("learning path not found")
	ErrPipelineBusy         = errors.New("pipeline run already in progress")
	ErrNoRuns               = errors.New("no pipeline runs yet")
	ErrInternal             = errors.New("internal error")
)
