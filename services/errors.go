package services

// ServiceError is the error kind surfaced to controllers. Persistence
// failures outside this set are logged and passed through untouched.
type ServiceError string

func (e ServiceError) Error() string { return string(e) }

const (
	ErrFormNotFound     ServiceError = "form not found"
	ErrResponseNotFound ServiceError = "response not found"

	// ErrAlreadySubmitted is the business outcome of the (form_id, email)
	// unique-constraint violation, not a fatal error.
	ErrAlreadySubmitted ServiceError = "you have already submitted this form"

	ErrFormInactive    ServiceError = "form is not accepting submissions"
	ErrEmailNotAllowed ServiceError = "email domain is not allowed"
	ErrInvalidInput    ServiceError = "invalid input"
)
