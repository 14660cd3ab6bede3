package entity

// ShippingInfo is transient state: collected at checkout, held until the
// payment webhook arrives, cleared once the order is saved.
type ShippingInfo struct {
	FullName   string `json:"full_name" form:"full_name"`
	Email      string `json:"email" form:"email"`
	Phone      string `json:"phone" form:"phone"`
	Line1      string `json:"line1" form:"line1"`
	Line2      string `json:"line2" form:"line2"`
	City       string `json:"city" form:"city"`
	PostalCode string `json:"postal_code" form:"postal_code"`
	Country    string `json:"country" form:"country"`
}
