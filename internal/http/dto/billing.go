package dto

// ResumeSubscriptionRequest es el body de POST /api/stripe/resume-subscription.
type ResumeSubscriptionRequest struct {
	SiteKey string `json:"siteKey"`
}

// ResumeSubscriptionResponse es la respuesta de éxito.
type ResumeSubscriptionResponse struct {
	Success bool `json:"success"`
}

// CreateCustomerRequest es el body de POST /api/stripe/create-customer.
type CreateCustomerRequest struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	SiteKey    string `json:"siteKey"`
	SiteName   string `json:"siteName"`
	OwnerPhone string `json:"ownerPhone,omitempty"`
}

// CreateCustomerResponse devuelve los IDs de Stripe creados.
type CreateCustomerResponse struct {
	CustomerID     string `json:"customerId"`
	SubscriptionID string `json:"subscriptionId"`
}
