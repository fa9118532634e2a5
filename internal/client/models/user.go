// Package models defines the records exchanged with the EasyFlow backend.
// The backend owns all business rules; these types only shape JSON payloads,
// so date fields stay as the ISO strings the API sends.
package models

// Plan is the subscription tier of an account.
type Plan string

const (
	PlanStarter Plan = "starter"
	PlanPro     Plan = "pro"
	PlanElite   Plan = "elite"
)

// User is the authenticated account record returned by the auth endpoints.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	CompanyName string `json:"companyName,omitempty"`
	Locale      string `json:"locale,omitempty"`
	Plan        Plan   `json:"plan,omitempty"`
}
