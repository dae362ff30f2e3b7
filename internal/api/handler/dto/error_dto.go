package dto

import "time"

const (
	TitleBadRequest     = "Bad Request! Consult the documentation"
	TitleConflict       = "Conflict! Consult the documentation"
	TitleInternalServer = "Internal Server Error"

	ExceptionValidation     = "ValidationException"
	ExceptionBusiness       = "BusinessException"
	ExceptionDataIntegrity  = "DataIntegrityViolationException"
	ExceptionInternalServer = "InternalServerException"
)

// ErrorResponse is the single error envelope every failure is translated
// into. Details carry one entry per field violation or business message;
// internal error text never reaches the caller.
type ErrorResponse struct {
	Title     string    `json:"title"`
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Exception string    `json:"exception"`
	Details   []string  `json:"details"`
}

type TokenRequest struct {
	Username string `json:"username"`
}
