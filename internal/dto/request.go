package dto

type LoginRequest struct {
	Username string `json:"username"`
}

type PurchaseRequest struct {
	Username   string `json:"username"`
	Contact    string `json:"contact"`
	PickupDate string `json:"pickup_date,omitempty"` // YYYY-MM-DD
}

type WishlistRequest struct {
	Username string `json:"username"`
}

type ReportRequest struct {
	Username string `json:"username"`
	Issue    string `json:"issue"`
}

type CompletePurchaseRequest struct {
	Buyer string `json:"buyer"`
}

type CreateTemplateRequest struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Gamepass    string   `json:"gamepass"`
	Image       string   `json:"image"`
	Tags        []string `json:"tags"`
}

type OpenDraftRequest struct {
	Username   string `json:"username"`
	TemplateID string `json:"template_id"`
}

type DraftContactRequest struct {
	Username string `json:"username"`
	Contact  string `json:"contact"`
}

type DraftDateRequest struct {
	Username   string `json:"username"`
	PickupDate string `json:"pickup_date"` // YYYY-MM-DD
}

type DraftActionRequest struct {
	Username string `json:"username"`
}

type ValidateDateRequest struct {
	Date string `json:"date"` // YYYY-MM-DD
}
