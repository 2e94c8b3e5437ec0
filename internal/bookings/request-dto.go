package bookings

// StartWizardRequest opens a new wizard session against a catalog item
type StartWizardRequest struct {
	CatalogItemID string `json:"catalog_item_id" binding:"required,uuid"`
}

// Typed per-step payloads. Each payload only touches its own step's
// fields; a PUT for step 2 can never clobber contact info.

type EventDetailsPayload struct {
	EventTitle string `json:"event_title" binding:"required,max=255"`
	EventType  string `json:"event_type" binding:"required,max=100"`
	EventDate  string `json:"event_date" binding:"required"`
	StartTime  string `json:"start_time" binding:"required"`
	EndTime    string `json:"end_time" binding:"required"`
}

type ServiceDetailsPayload struct {
	GuestCount     int      `json:"guest_count" binding:"required,min=1"`
	Address        string   `json:"address" binding:"required,max=500"`
	City           string   `json:"city" binding:"required,max=100"`
	State          string   `json:"state" binding:"required,max=100"`
	MenuSelections []string `json:"menu_selections"`
	Notes          string   `json:"notes" binding:"max=2000"`
}

type ContactInfoPayload struct {
	ContactName  string `json:"contact_name" binding:"required,max=255"`
	ContactEmail string `json:"contact_email" binding:"required,email"`
	ContactPhone string `json:"contact_phone" binding:"required,max=50"`
}

// SubmitWizardRequest finalizes the session. The promo code is optional
// and only checked here, at submission time.
type SubmitWizardRequest struct {
	PromoCode string `json:"promo_code" binding:"omitempty,max=50"`
}

type BookingListQuery struct {
	Page  int `form:"page,default=1" binding:"min=1"`
	Limit int `form:"limit,default=10" binding:"min=1,max=100"`
}
