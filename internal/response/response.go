package response

import (
	"errors"
	"log"

	"github.com/bloghub-dev/bloghub/internal/apierr"
	"github.com/gin-gonic/gin"
)

// Envelope is the uniform success wrapper returned by every endpoint.
type Envelope struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

// ErrorEnvelope is the uniform failure wrapper. Errors holds per-field
// validation messages and is empty for non-validation failures.
type ErrorEnvelope struct {
	StatusCode int                 `json:"statusCode"`
	Message    string              `json:"message"`
	Success    bool                `json:"success"`
	Errors     []apierr.FieldError `json:"errors"`
}

// JSON writes the success envelope with the given status.
func JSON(ctx *gin.Context, status int, data interface{}, message string) {
	ctx.JSON(status, Envelope{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// Error renders any error as the failure envelope. Tagged errors keep their
// kind's status and message; anything else becomes an opaque 500.
func Error(ctx *gin.Context, err error) {
	var apiErr *apierr.Error

	if !errors.As(err, &apiErr) {
		apiErr = apierr.Internal("Internal server error", err)
	}

	if apiErr.Kind == apierr.KindInternal {
		log.Printf("%s %s: %v", ctx.Request.Method, ctx.Request.URL.Path, apiErr)
	}

	fields := apiErr.Fields

	if fields == nil {
		fields = []apierr.FieldError{}
	}

	ctx.JSON(apiErr.Status(), ErrorEnvelope{
		StatusCode: apiErr.Status(),
		Message:    apiErr.Message,
		Success:    false,
		Errors:     fields,
	})
}

// AbortError renders the failure envelope and halts the handler chain.
func AbortError(ctx *gin.Context, err error) {
	Error(ctx, err)
	ctx.Abort()
}
