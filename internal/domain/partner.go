package domain

// Partner is a business partner holding an equity fraction in [0,1].
type Partner struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	DisplayName string  `json:"displayName"`
	Equity      float64 `json:"equity"`
	IsActive    bool    `json:"isActive"`
	JoinDate    Date    `json:"joinDate"`
}

// PartnerConfig is the partner set used when distributing amounts by equity.
type PartnerConfig struct {
	Partners []Partner `json:"partners"`
}

// ActivePartners returns the active partners in their configured order.
func ActivePartners(partners []Partner) []Partner {
	active := make([]Partner, 0, len(partners))
	for _, p := range partners {
		if p.IsActive {
			active = append(active, p)
		}
	}
	return active
}
