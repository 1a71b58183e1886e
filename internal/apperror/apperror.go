package apperror

import (
	"errors"
	"fmt"
)

// Kind is the discriminant for the closed set of application error variants.
// Boundaries (HTTP middleware, CLI) dispatch on it via a lookup table instead
// of matching concrete types.
type Kind string

const (
	KindProjectNotFound      Kind = "PROJECT_NOT_FOUND"
	KindSectionNotFound      Kind = "SECTION_NOT_FOUND"
	KindConversationNotFound Kind = "CONVERSATION_NOT_FOUND"
	KindSectionUncompleted   Kind = "SECTION_UNCOMPLETED"
	KindAIResponse           Kind = "AI_RESPONSE_ERROR"
	KindInvalidInput         Kind = "INVALID_INPUT"
	KindInvalidCredentials   Kind = "INVALID_CREDENTIALS"
	KindUnauthorizedUser     Kind = "UNAUTHORIZED_USER"
)

type Error struct {
	Kind    Kind
	Message string

	// Populated for KindAIResponse only.
	ResponseID       string
	Status           string
	Code             string
	IncompleteReason string
}

func (e *Error) Error() string {
	return e.Message
}

// KindOf extracts the Kind of err, unwrapping as needed.
func KindOf(err error) (Kind, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind, true
	}
	return "", false
}

// IsKind reports whether err carries the given Kind.
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

func NewProjectNotFound(projectID string) *Error {
	return &Error{
		Kind:    KindProjectNotFound,
		Message: fmt.Sprintf("project with id %s does not exist", projectID),
	}
}

func NewSectionNotFound(projectID, sectionID string) *Error {
	return &Error{
		Kind:    KindSectionNotFound,
		Message: fmt.Sprintf("section with id %s does not exist in project %s", sectionID, projectID),
	}
}

func NewConversationNotFound(projectID string) *Error {
	return &Error{
		Kind:    KindConversationNotFound,
		Message: fmt.Sprintf("conversation for project with id %s does not exist", projectID),
	}
}

func NewConversationByIDNotFound(id string) *Error {
	return &Error{
		Kind:    KindConversationNotFound,
		Message: fmt.Sprintf("conversation with id %s does not exist", id),
	}
}

func NewSectionUncompleted(projectID, sectionID string) *Error {
	return &Error{
		Kind:    KindSectionUncompleted,
		Message: fmt.Sprintf("section with id %s of project %s has no content yet", sectionID, projectID),
	}
}

func NewAIResponseError(responseID, code, message, status, incompleteReason string) *Error {
	msg := fmt.Sprintf("AI response with id %s failed with status %s: [%s] %s", responseID, status, code, message)
	if incompleteReason != "" {
		msg += fmt.Sprintf(" (incomplete: %s)", incompleteReason)
	}
	return &Error{
		Kind:             KindAIResponse,
		Message:          msg,
		ResponseID:       responseID,
		Status:           status,
		Code:             code,
		IncompleteReason: incompleteReason,
	}
}

func NewInvalidInput(expected, actual string) *Error {
	return &Error{
		Kind:    KindInvalidInput,
		Message: fmt.Sprintf("invalid input - expected: %s, actual: %s", expected, actual),
	}
}

func NewInvalidCredentials(message string) *Error {
	return &Error{
		Kind:    KindInvalidCredentials,
		Message: message,
	}
}

func NewUnauthorizedUser(user string) *Error {
	return &Error{
		Kind:    KindUnauthorizedUser,
		Message: fmt.Sprintf("user %q is not authorized to access the APIs", user),
	}
}
