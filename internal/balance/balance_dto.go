package balance

type BalanceResponse struct {
	EmployeeID             string    `json:"employee_id"`
	Year                   int       `json:"year"`
	EntitlementDays        int       `json:"entitlement_days"`
	UsedDays               int       `json:"used_days"`
	CarriedForwardDays     int       `json:"carried_forward_days"`
	CarriedForwardUsedDays int       `json:"carried_forward_used_days"`
	Remaining              Remaining `json:"remaining"`
}

func mapBalanceResponse(a Account) BalanceResponse {
	return BalanceResponse{
		EmployeeID:             a.EmployeeID.String(),
		Year:                   a.Year,
		EntitlementDays:        a.EntitlementDays,
		UsedDays:               a.UsedDays,
		CarriedForwardDays:     a.CarriedForwardDays,
		CarriedForwardUsedDays: a.CarriedForwardUsedDays,
		Remaining:              ComputeRemaining(a),
	}
}
