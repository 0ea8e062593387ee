package application

import (
	"fmt"
	"strings"
)

// ValidateSubmitInput validates the scalar fields required for submission.
func ValidateSubmitInput(req SubmitRequest) error {
	if strings.TrimSpace(req.FullName) == "" {
		return fmt.Errorf("%w: fullName", ErrMissingField)
	}
	if strings.TrimSpace(req.PhoneNumber) == "" {
		return fmt.Errorf("%w: phoneNumber", ErrMissingField)
	}
	if strings.TrimSpace(req.IDNumber) == "" {
		return fmt.Errorf("%w: idNumber", ErrMissingField)
	}
	if strings.TrimSpace(string(req.ServiceType)) == "" {
		return fmt.Errorf("%w: serviceType", ErrMissingField)
	}
	return nil
}

// ValidateNote validates an admin note for AttachNote.
func ValidateNote(note string) error {
	if strings.TrimSpace(note) == "" {
		return ErrEmptyNote
	}
	return nil
}
