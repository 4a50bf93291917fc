package model

// Feedback is the abstract outcome signal of a completed operation.
type Feedback string

const (
	FeedbackSuccess     Feedback = "success"
	FeedbackRejection   Feedback = "rejection"
	FeedbackDestructive Feedback = "destructive"
)
