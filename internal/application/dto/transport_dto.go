package dto

// DriverRequest alta de conductor.
type DriverRequest struct {
	Name    string `json:"name"`
	License string `json:"license,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// VehicleRequest alta de vehículo.
type VehicleRequest struct {
	Model    string `json:"model"`
	Plate    string `json:"plate"`
	Capacity string `json:"capacity,omitempty"`
}

// ClientRequest alta de cliente (datos de facturación).
type ClientRequest struct {
	Name          string `json:"name"`
	Address       string `json:"address,omitempty"`
	ContactPerson string `json:"contactPerson,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Email         string `json:"email,omitempty"`
	TaxID         string `json:"taxId,omitempty"`
}
