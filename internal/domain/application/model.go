package application

import "time"

// Status represents the processing state of an application
type Status string

const (
	StatusPending       Status = "pending"
	StatusProcessing    Status = "processing"
	StatusNeedsMoreInfo Status = "needs_more_info"
	StatusCompleted     Status = "completed"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusNeedsMoreInfo, StatusCompleted:
		return true
	}
	return false
}

// ServiceType identifies the administrative procedure being requested
type ServiceType string

const (
	ServiceWithdrawDocuments      ServiceType = "withdraw_documents"
	ServiceAcademicCertificate    ServiceType = "academic_certificate"
	ServiceAcademicProcess        ServiceType = "academic_process"
	ServiceTransferOut            ServiceType = "transfer_out"
	ServiceEnrollmentConfirmation ServiceType = "enrollment_confirmation"
	ServiceGraduationCertificate  ServiceType = "graduation_certificate"
	ServiceProgramCompletion      ServiceType = "program_completion"
	ServiceTempGraduationCert     ServiceType = "temp_graduation_certificate"
)

// Attachment is a self-contained copy of an uploaded file. Data holds the
// full content as a data URI so the record needs no external file storage.
type Attachment struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

// Application represents one citizen request through its whole lifecycle.
// JSON field names are the storage wire contract.
type Application struct {
	OrderNumber int          `json:"orderNumber"`
	Code        string       `json:"code"`
	FullName    string       `json:"fullName"`
	PhoneNumber string       `json:"phoneNumber"`
	IDNumber    string       `json:"idNumber"`
	ServiceType ServiceType  `json:"serviceType"`
	Files       []Attachment `json:"files"`
	Status      Status       `json:"status"`
	AdminNote   string       `json:"adminNote,omitempty"`
	IsReceived  bool         `json:"isReceived"`
	SubmittedAt time.Time    `json:"submittedAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	CompletedAt *time.Time   `json:"completedAt"`
	ReceivedAt  *time.Time   `json:"receivedAt"`
}
