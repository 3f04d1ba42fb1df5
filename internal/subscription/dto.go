// AngelaMos | 2026
// dto.go

package subscription

type CreateSubscriptionRequest struct {
	SubscriptionType string `json:"subscriptionType" validate:"required"`
}

type UpdateRequestStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type ListRequestsParams struct {
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Status   string `json:"status"`
}

func (p *ListRequestsParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListRequestsParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Outcome is the result of RequestSubscription. Exactly one of
// Subscription or Request is set.
type Outcome struct {
	Message      string               `json:"message"`
	Subscription *Subscription        `json:"subscription,omitempty"`
	Request      *OrganizationRequest `json:"request,omitempty"`
}

type ApprovalResult struct {
	Message      string               `json:"message"`
	Subscription *Subscription        `json:"subscription"`
	Request      *OrganizationRequest `json:"request"`
}

type MySubscriptionResponse struct {
	Subscription  *Subscription        `json:"subscription"`
	LatestRequest *OrganizationRequest `json:"latestRequest"`
}
