package dto

// CheckoutRequest starts a hosted checkout for a course.
type CheckoutRequest struct {
	Email       string `json:"email" binding:"required" example:"ada@example.com"`
	CourseID    string `json:"courseId" binding:"required" example:"sat-spring"`
	CourseName  string `json:"courseName" binding:"required" example:"SAT Spring Intensive"`
	AmountCents int64  `json:"amountCents" binding:"required" example:"49900"`
}

// CheckoutResponse carries the URL the client redirects to.
type CheckoutResponse struct {
	CheckoutSessionID string `json:"checkoutSessionId"`
	CheckoutURL       string `json:"checkoutUrl"`
}
