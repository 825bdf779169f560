package service

import (
	"errors"
	"fmt"
)

const (
	CodeValidation            = "VALIDATION_ERROR"
	CodeDuplicateEmail        = "DUPLICATE_EMAIL"
	CodeDuplicateCategoryName = "DUPLICATE_CATEGORY_NAME"
	CodeInvalidCredentials    = "INVALID_CREDENTIALS"
	CodeInvalidPassword       = "INVALID_PASSWORD"
	CodeForbidden             = "FORBIDDEN"
	CodeTaskNotFound          = "TASK_NOT_FOUND"
	CodeCategoryNotFound      = "CATEGORY_NOT_FOUND"
	CodeCategoryMissing       = "CATEGORY_REFERENCE_NOT_FOUND"
	CodeUserNotFound          = "USER_NOT_FOUND"
	CodePastDueImmutable      = "PAST_DUE_IMMUTABLE"
	CodeCategoryInUse         = "CATEGORY_IN_USE"
	CodeNoFieldsToUpdate      = "NO_FIELDS_TO_UPDATE"
	CodeInvalidRole           = "INVALID_ROLE"
	CodeSelfDelete            = "SELF_DELETE"
)

type BusinessError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

type Detail struct {
	Key     string
	Payload any
}

func (b *BusinessError) Error() string {
	if b.Err != nil {
		return fmt.Sprintf("[%s] %s: %s", b.Code, b.Message, b.Err.Error())
	}
	return fmt.Sprintf("[%s] %s", b.Code, b.Message)
}

func (b *BusinessError) Unwrap() error {
	return b.Err
}

func ToDetail(key string, payload any) Detail {
	return Detail{
		Key:     key,
		Payload: payload,
	}
}

func NewBusinessError(code string, message string, details ...Detail) *BusinessError {
	busErr := &BusinessError{
		Code:    code,
		Message: message,
		Details: make(map[string]any),
	}

	for _, detail := range details {
		busErr.Details[detail.Key] = detail.Payload
	}

	return busErr
}

// CodeOf возвращает код бизнес-ошибки или пустую строку.
func CodeOf(err error) string {
	var busErr *BusinessError
	if errors.As(err, &busErr) {
		return busErr.Code
	}
	return ""
}

// FieldError - ошибка валидации одного поля запроса.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func NewValidationError(fields ...FieldError) *BusinessError {
	return NewBusinessError(CodeValidation, "Validation failed", ToDetail("errors", fields))
}

func ErrTaskNotFound() *BusinessError {
	return NewBusinessError(CodeTaskNotFound, "Task not found")
}

func ErrCategoryNotFound() *BusinessError {
	return NewBusinessError(CodeCategoryNotFound, "Category not found")
}

// ErrCategoryReference - ссылка на категорию из задачи не разрешилась.
// В отличие от ErrCategoryNotFound это ошибка запроса, а не отсутствующий ресурс.
func ErrCategoryReference() *BusinessError {
	return NewBusinessError(CodeCategoryMissing, "Category not found")
}

func ErrUserNotFound() *BusinessError {
	return NewBusinessError(CodeUserNotFound, "User not found")
}

func ErrDuplicateEmail(message string) *BusinessError {
	return NewBusinessError(CodeDuplicateEmail, message)
}

func ErrDuplicateCategoryName() *BusinessError {
	return NewBusinessError(CodeDuplicateCategoryName, "Category with this name already exists")
}

func ErrInvalidCredentials() *BusinessError {
	return NewBusinessError(CodeInvalidCredentials, "Invalid email or password")
}

func ErrForbidden() *BusinessError {
	return NewBusinessError(CodeForbidden, "Access denied")
}

func ErrPastDueImmutable() *BusinessError {
	return NewBusinessError(CodePastDueImmutable, "Cannot change status of tasks past their due date")
}

func ErrCategoryInUse(tasks int) *BusinessError {
	return NewBusinessError(CodeCategoryInUse, "Cannot delete category as it is being used by tasks",
		ToDetail("task_count", tasks))
}

func ErrNoFieldsToUpdate() *BusinessError {
	return NewBusinessError(CodeNoFieldsToUpdate, "No fields to update")
}
