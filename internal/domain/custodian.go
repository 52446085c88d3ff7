// Package domain defines the canonical entity shapes returned by the custody
// API. Responses may carry legacy field names from earlier schema generations;
// reconciliation to the canonical shape happens here, once, via UnmarshalJSON.
package domain

// Custodian is a record-keeping institution holding portfolios.
type Custodian struct {
	ID             string            `json:"id"`
	Code           string            `json:"code"`
	Name           string            `json:"name"`
	Description    string            `json:"description,omitempty"`
	ContactInfo    map[string]string `json:"contact_info,omitempty"`
	APICredentials map[string]string `json:"api_credentials,omitempty"`
	CreatedAt      string            `json:"created_at,omitempty"`
	UpdatedAt      string            `json:"updated_at,omitempty"`
}

// CreateCustodianRequest is the payload for creating a custodian. Code
// uniqueness is enforced server side.
type CreateCustodianRequest struct {
	Name           string            `json:"name"`
	Code           string            `json:"code"`
	Description    string            `json:"description,omitempty"`
	ContactInfo    map[string]string `json:"contact_info,omitempty"`
	APICredentials map[string]string `json:"api_credentials,omitempty"`
}

// UpdateCustodianRequest carries a partial custodian update. Zero-valued
// fields are omitted from the request body.
type UpdateCustodianRequest struct {
	Name           string            `json:"name,omitempty"`
	Code           string            `json:"code,omitempty"`
	Description    string            `json:"description,omitempty"`
	ContactInfo    map[string]string `json:"contact_info,omitempty"`
	APICredentials map[string]string `json:"api_credentials,omitempty"`
}
