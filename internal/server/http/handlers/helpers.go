package handlers

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	domainErrors "github.com/stitchcraft/stitchcraft/internal/domain/errors"
	"github.com/stitchcraft/stitchcraft/internal/server/http/dto"
	"github.com/stitchcraft/stitchcraft/internal/usecase"
)

// respondError writes the status and body matching err. Unknown errors are
// attached to the gin context for the request logger and hidden from the client.
func respondError(c *gin.Context, err error) {
	if verr, ok := domainErrors.AsValidation(err); ok {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: "validation failed", Fields: verr.Fields})
		return
	}
	var rejected *usecase.TokenRejectedError
	switch {
	case errors.As(err, &rejected):
		abortWith(c, http.StatusNotFound, rejected.Error())
	case errors.Is(err, domainErrors.ErrUnauthorized), errors.Is(err, domainErrors.ErrInvalidCredentials):
		abortWith(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domainErrors.ErrForbidden):
		abortWith(c, http.StatusForbidden, "forbidden")
	case errors.Is(err, domainErrors.ErrNotFound):
		abortWith(c, http.StatusNotFound, "not found")
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		abortWith(c, http.StatusConflict, "already exists")
	default:
		_ = c.Error(err)
		abortWith(c, http.StatusInternalServerError, "internal error")
	}
}

func abortWith(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: message})
}

// bindJSON decodes the request body into req. Binding rule violations become
// 422 field errors, anything else is a malformed request.
func bindJSON(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := &domainErrors.ValidationError{}
		for _, fe := range verrs {
			out.Add(fe.Field(), describeRule(fe))
		}
		respondError(c, out)
		return false
	}
	abortWith(c, http.StatusBadRequest, "malformed request body")
	return false
}

func describeRule(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		if fe.Kind() == reflect.String {
			return "must be at least " + fe.Param() + " characters"
		}
		return "must have at least " + fe.Param() + " entries"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	}
	return "is invalid"
}

// paramID parses a positive integer path parameter. Anything else is a 404.
func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		abortWith(c, http.StatusNotFound, "not found")
		return 0, false
	}
	return id, true
}

// bindOptionalJSON is bindJSON for endpoints whose body may be omitted.
func bindOptionalJSON(c *gin.Context, req any) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	return bindJSON(c, req)
}
