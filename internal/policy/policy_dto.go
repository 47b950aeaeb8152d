package policy

type PolicyYearResponse struct {
	Year                  int    `json:"year"`
	CarryForwardLimitDays int    `json:"carry_forward_limit_days"`
	CarryForwardExpiry    string `json:"carry_forward_expiry"`
	EscalationDays        int    `json:"escalation_days"`
	AnnualFallbackDays    *int   `json:"annual_fallback_days,omitempty"`
}

type LeaveTypeResponse struct {
	Code               string `json:"code"`
	Name               string `json:"name"`
	FixedDurationDays  *int   `json:"fixed_duration_days,omitempty"`
	DefaultDays        *int   `json:"default_days,omitempty"`
	PayCategory        string `json:"pay_category"`
	RequiresReason     bool   `json:"requires_reason"`
	RequiresAttachment bool   `json:"requires_attachment"`
}

func mapPolicyYearResponse(p PolicyYear) PolicyYearResponse {
	return PolicyYearResponse{
		Year:                  p.Year,
		CarryForwardLimitDays: p.CarryForwardLimitDays,
		CarryForwardExpiry:    p.CarryForwardExpiry.Format("2006-01-02"),
		EscalationDays:        p.EscalationDays,
		AnnualFallbackDays:    p.AnnualEntitlementFallback,
	}
}

func mapLeaveTypeResponse(r LeaveTypeRule) LeaveTypeResponse {
	return LeaveTypeResponse{
		Code:               r.Code,
		Name:               r.Name,
		FixedDurationDays:  r.FixedDurationDays,
		DefaultDays:        r.DefaultDays,
		PayCategory:        r.PayCategory,
		RequiresReason:     r.RequiresReason,
		RequiresAttachment: r.RequiresAttachment,
	}
}
