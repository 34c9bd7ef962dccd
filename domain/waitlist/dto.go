package waitlist

import (
	"github.com/hebed-ai/accelerator-landing/internal/models"
)

// SubmissionRequest is what a form placement or an API caller hands to the service.
// UserAgent and IPAddress come from the HTTP request, never from the submitted body.
type SubmissionRequest struct {
	Email     string
	Source    string
	UserAgent string
	IPAddress string
}

type CreateSubmissionRequest struct {
	Email  string `json:"email" form:"email" binding:"required,max=320"`
	Source string `json:"source" form:"source" binding:"required,max=64"`
}

type SubmissionResponse struct {
	Email  string `json:"email"`
	Source string `json:"source"`
}

// ========================================
// Mappers
// ========================================

func ToSubmissionModel(normalizedEmail string, req *SubmissionRequest) *models.WaitlistSubmission {
	if req == nil {
		return nil
	}
	return &models.WaitlistSubmission{
		Email:     normalizedEmail,
		Source:    optionalString(req.Source),
		IPAddress: optionalString(req.IPAddress),
		UserAgent: optionalString(req.UserAgent),
	}
}

func ToSubmissionResponse(submission *models.WaitlistSubmission) SubmissionResponse {
	if submission == nil {
		return SubmissionResponse{}
	}
	response := SubmissionResponse{Email: submission.Email}
	if submission.Source != nil {
		response.Source = *submission.Source
	}
	return response
}

func optionalString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
