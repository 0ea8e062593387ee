package application

import "errors"

var (
	// ErrNotFound indicates no application matches the lookup key.
	ErrNotFound = errors.New("application not found")
	// ErrMissingField indicates a required submission field is empty.
	ErrMissingField = errors.New("required field is empty")
	// ErrInvalidStatus indicates an unknown status value.
	ErrInvalidStatus = errors.New("invalid status")
	// ErrNoteRequired indicates a direct transition to needs_more_info
	// without a note; callers must go through AttachNote.
	ErrNoteRequired = errors.New("note required for needs_more_info")
	// ErrEmptyNote indicates an empty or whitespace-only admin note.
	ErrEmptyNote = errors.New("admin note is empty")
	// ErrBadCodeFormat indicates a tracking key that fails the code pattern.
	ErrBadCodeFormat = errors.New("tracking code format invalid")
	// ErrAttachmentTooLarge indicates a file over the per-file size limit.
	ErrAttachmentTooLarge = errors.New("attachment exceeds size limit")
	// ErrAttachmentType indicates a non-image attachment.
	ErrAttachmentType = errors.New("attachment is not an image")
)
