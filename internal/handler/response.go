package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"Vista_Video/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ErrorResponse 定义了标准的API错误响应结构
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// ValidationErrorResponse 表单校验失败时返回，errors为 "field: message" 用;拼接
type ValidationErrorResponse struct {
	Success bool   `json:"success"`
	Errors  string `json:"errors"`
}

// sendErrorResponse 是一个辅助函数，用于发送标准格式的错误响应
func sendErrorResponse(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, ErrorResponse{Success: false, Error: message})
}

func sendValidationError(c *gin.Context, err *service.ValidationError) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ValidationErrorResponse{Success: false, Errors: err.Error()})
}

// toValidationError 把gin绑定时validator给出的错误翻译成字段级别的错误
func toValidationError(err error) *service.ValidationError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &service.ValidationError{Fields: []service.FieldError{{Message: err.Error()}}}
	}
	out := &service.ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, service.FieldError{
			Field:   formFieldName(fe.Field()),
			Message: validationMessage(fe),
		})
	}
	return out
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	default:
		return fmt.Sprintf("Failed on the '%s' rule.", fe.Tag())
	}
}

// VideoFile -> video_file
func formFieldName(goName string) string {
	var b strings.Builder
	for i, r := range goName {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
