package domain

// Application statuses accepted by the upstream API.
const (
	StatusSubmitted = "submitted"
	StatusReviewed  = "reviewed"
	StatusInterview = "interview"
	StatusOffer     = "offer"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusSubmitted, StatusReviewed, StatusInterview, StatusOffer:
		return true
	}
	return false
}

type Application struct {
	ID        int64  `json:"id"`
	VacancyID int64  `json:"vacancy_id"`
	FirstName string `json:"first_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	JobTitle  string `json:"job_title"`
	LinkedIn  string `json:"linkedin"`
	CVPath    string `json:"cv_path"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}
