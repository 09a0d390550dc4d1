package dto

// AdvisorChatRequest carries one student message to the advisor stub.
type AdvisorChatRequest struct {
	StudentID string `json:"student_id,omitempty"`
	Message   string `json:"message" validate:"required,max=2000"`
}

// AdvisorChatResponse is the canned advisor reply.
type AdvisorChatResponse struct {
	Topic string `json:"topic"`
	Reply string `json:"reply"`
}
