package companies

import "time"

// Company is an employer profile registered by a recruiter.
type Company struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Website     string    `json:"website"`
	Location    string    `json:"location"`
	Logo        string    `json:"logo"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateForm is the registration payload. companyName is accepted as an alias of name.
type CreateForm struct {
	Name        string `json:"name"`
	CompanyName string `json:"companyName"`
}

func (f CreateForm) name() string {
	if f.Name != "" {
		return f.Name
	}
	return f.CompanyName
}

// UpdateForm carries the editable company fields. Empty fields are left untouched.
type UpdateForm struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Website     string `json:"website" validate:"omitempty,url"`
	Location    string `json:"location"`
	Logo        string `json:"logo" validate:"omitempty,url"`
}
