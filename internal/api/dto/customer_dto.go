package dto

// CreateCustomerRequest payload.
type CreateCustomerRequest struct {
	Company    string `json:"company"`
	CircuitID  string `json:"circuit_id"`
	Type       string `json:"type"`
	Location   string `json:"location"`
	IPAddress  string `json:"ip_address"`
	PopSite    string `json:"pop_site"`
	Email      string `json:"email"`
	SwitchInfo string `json:"switch_info"`
	Owner      string `json:"owner"`
}

// CustomerResponse renders a customer.
type CustomerResponse struct {
	ID         string `json:"id"`
	Company    string `json:"company"`
	CircuitID  string `json:"circuit_id"`
	Type       string `json:"type,omitempty"`
	Location   string `json:"location,omitempty"`
	IPAddress  string `json:"ip_address,omitempty"`
	PopSite    string `json:"pop_site,omitempty"`
	Email      string `json:"email,omitempty"`
	SwitchInfo string `json:"switch_info,omitempty"`
	Owner      string `json:"owner,omitempty"`
}
