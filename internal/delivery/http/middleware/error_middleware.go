package middleware

import (
	"errors"
	"net/http"

	"go-candidate-backend/internal/delivery/http/response"
	"go-candidate-backend/internal/domain"
	"go-candidate-backend/pkg/apperror"
	"go-candidate-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// EmailConflictDetail is the error payload of a 409.
type EmailConflictDetail struct {
	Email      string `json:"email"`
	Suggestion string `json:"suggestion"`
}

// ErrorHandler renders the last error a handler attached with c.Error.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		appErr := ToAppError(c.Errors.Last().Err)
		if appErr.Code >= http.StatusInternalServerError {
			// Never expose internal details to clients; keep them in the log.
			logger.FromContext(c.Request.Context()).Error("Request failed",
				"status", appErr.Code,
				"path", c.Request.URL.Path,
				"error", appErr.Err,
			)
		}
		response.Error(c, appErr.Code, appErr.Message, appErr.Details)
	}
}

// ToAppError maps any error returned by a usecase onto its HTTP form.
func ToAppError(err error) *apperror.AppError {
	var (
		appErr          *apperror.AppError
		emailExists     *domain.EmailAlreadyExistsError
		candidateAbsent *domain.CandidateNotFoundError
		resumeAbsent    *domain.ResumeNotFoundError
	)

	switch {
	case errors.As(err, &emailExists):
		return apperror.Conflict(emailExists.Error()).WithDetails(EmailConflictDetail{
			Email:      emailExists.Email,
			Suggestion: domain.EmailSuggestion,
		})
	case errors.As(err, &candidateAbsent):
		return apperror.NotFound(candidateAbsent.Error())
	case errors.As(err, &resumeAbsent):
		return apperror.NotFound(resumeAbsent.Error())
	case errors.As(err, &appErr):
		return appErr
	default:
		return apperror.Internal(err)
	}
}
