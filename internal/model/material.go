package model

// MaterialVendor is a supplier offering for a material.
type MaterialVendor struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	DistanceKm   float64 `json:"distanceKm"`
	DeliveryDays int     `json:"deliveryDays"`
}

// Material is a marketplace listing with its vendors.
type Material struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Category MachineCategory  `json:"category"`
	Vendors  []MaterialVendor `json:"vendors"`
}
