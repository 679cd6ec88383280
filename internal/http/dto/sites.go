package dto

// RegisterSiteRequest es el body de POST /api/register: alta completa de un
// tenant (cuenta + billing + documento siteSettings).
type RegisterSiteRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	SiteKey      string `json:"siteKey"`
	SiteName     string `json:"siteName"`
	OwnerName    string `json:"ownerName"`
	OwnerAddress string `json:"ownerAddress"`
	OwnerPhone   string `json:"ownerPhone"`
	PostalCode   string `json:"postalCode,omitempty"`
	IsFreePlan   bool   `json:"isFreePlan"`
	// Overwrite permite pisar un siteKey existente (re-registro).
	Overwrite bool `json:"overwrite,omitempty"`
}

// RegisterSiteResponse devuelve los identificadores creados.
type RegisterSiteResponse struct {
	OK          bool   `json:"ok"`
	SiteKey     string `json:"siteKey"`
	OwnerID     string `json:"ownerId"`
	CustomerURL string `json:"customerUrl"`
}

// CreateUserRequest es el body de POST /api/create-user.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateUserResponse devuelve el uid creado.
type CreateUserResponse struct {
	UID string `json:"uid"`
}

// SiteResponse es la vista de un site que devuelve GET /api/sites/by-owner.
type SiteResponse struct {
	SiteKey     string `json:"siteKey"`
	SiteName    string `json:"siteName"`
	OwnerEmail  string `json:"ownerEmail"`
	CustomerURL string `json:"customerUrl"`
	IsFreePlan  bool   `json:"isFreePlan"`
}
