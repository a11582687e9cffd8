package domain

// ServiceCategory groups the services offered to clients.
type ServiceCategory string

const (
	ServiceCategoryConsulting     ServiceCategory = "consulting"
	ServiceCategoryImplementation ServiceCategory = "implementation"
	ServiceCategoryMaintenance    ServiceCategory = "maintenance"
	ServiceCategoryTraining       ServiceCategory = "training"
)

// Service is a billable offering that proposals reference by ID.
type Service struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    ServiceCategory `json:"category"`
	BasePrice   float64         `json:"basePrice"`
	Currency    string          `json:"currency"`
	Duration    string          `json:"duration"` // e.g. "3 months"
	IsActive    bool            `json:"isActive"`
}
