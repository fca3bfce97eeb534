package util

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailRegistered     = errors.New("email address already registered")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrProjectNotFound     = errors.New("project not found")
	ErrWindowNotFound      = errors.New("competency window not found")
	ErrWindowNotOpen       = errors.New("competency window is not open")
	ErrWindowOverlap       = errors.New("an open window already exists for this group")
	ErrScoreOutOfRange     = errors.New("score outside the 1-5 competency domain")
	ErrRawScoreOutOfRange  = errors.New("score outside the 0-100 range")
	ErrSelfEvaluation      = errors.New("cannot peer-evaluate yourself")
	ErrAlreadySubmitted    = errors.New("evaluation already submitted")
	ErrPlanNotFound        = errors.New("project plan not found")
	ErrPlanExists          = errors.New("a plan for this project has already been submitted")
	ErrPlanAlreadyReviewed = errors.New("plan review already finalized")
	ErrUnsupportedFileType = errors.New("file type not allowed for plan documents")
	ErrUnknownCriterion    = errors.New("criterion does not belong to the rubric")
	ErrLevelOutOfRange     = errors.New("level not defined for this criterion")
)
