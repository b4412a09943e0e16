package entities

import "time"

// Default widget settings provisioned for owners that have none yet.
// Kept as named constants so products and tests can override the literal.
const (
	DefaultBusinessName   = "My Business"
	DefaultPrimaryColor   = "#4F46E5"
	DefaultSecondaryColor = "#FFFFFF"
	DefaultPosition       = "bottom-right"
	DefaultWelcomeMessage = "Hi! How can we help you today?"
	DefaultOpenDelay      = 5 // seconds
)

type WidgetSettings struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"` // Owner account
	BusinessName   string    `json:"business_name"`
	PrimaryColor   string    `json:"primary_color"`
	SecondaryColor string    `json:"secondary_color"`
	Position       string    `json:"position"` // e.g., "bottom-right", "bottom-left"
	IconURL        string    `json:"icon_url"`
	WelcomeMessage string    `json:"welcome_message"`
	IsActive       bool      `json:"is_active"`
	AutoOpen       bool      `json:"auto_open"`
	OpenDelay      int       `json:"open_delay"` // Seconds before auto-open, never negative
	HideOnMobile   bool      `json:"hide_on_mobile"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// DefaultWidgetSettings builds the record inserted when an owner has no
// settings row yet.
func DefaultWidgetSettings(userID string) *WidgetSettings {
	return &WidgetSettings{
		UserID:         userID,
		BusinessName:   DefaultBusinessName,
		PrimaryColor:   DefaultPrimaryColor,
		SecondaryColor: DefaultSecondaryColor,
		Position:       DefaultPosition,
		WelcomeMessage: DefaultWelcomeMessage,
		IsActive:       true,
		AutoOpen:       false,
		OpenDelay:      DefaultOpenDelay,
		HideOnMobile:   false,
	}
}

// WidgetSettingsUpdate is a partial settings record: nil fields are left
// untouched by an update. An empty ID means "insert a new row".
type WidgetSettingsUpdate struct {
	ID             string  `json:"id"`
	BusinessName   *string `json:"business_name"`
	PrimaryColor   *string `json:"primary_color"`
	SecondaryColor *string `json:"secondary_color"`
	Position       *string `json:"position"`
	IconURL        *string `json:"icon_url"`
	WelcomeMessage *string `json:"welcome_message"`
	IsActive       *bool   `json:"is_active"`
	AutoOpen       *bool   `json:"auto_open"`
	OpenDelay      *int    `json:"open_delay"`
	HideOnMobile   *bool   `json:"hide_on_mobile"`
}

// Apply overlays the supplied fields onto s.
func (u *WidgetSettingsUpdate) Apply(s *WidgetSettings) {
	if u.BusinessName != nil {
		s.BusinessName = *u.BusinessName
	}
	if u.PrimaryColor != nil {
		s.PrimaryColor = *u.PrimaryColor
	}
	if u.SecondaryColor != nil {
		s.SecondaryColor = *u.SecondaryColor
	}
	if u.Position != nil {
		s.Position = *u.Position
	}
	if u.IconURL != nil {
		s.IconURL = *u.IconURL
	}
	if u.WelcomeMessage != nil {
		s.WelcomeMessage = *u.WelcomeMessage
	}
	if u.IsActive != nil {
		s.IsActive = *u.IsActive
	}
	if u.AutoOpen != nil {
		s.AutoOpen = *u.AutoOpen
	}
	if u.OpenDelay != nil {
		s.OpenDelay = *u.OpenDelay
	}
	if u.HideOnMobile != nil {
		s.HideOnMobile = *u.HideOnMobile
	}
}

type KeywordResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Keywords  []string  `json:"keywords"` // Trigger phrases, matched case-insensitively
	Response  string    `json:"response"`
	Priority  int       `json:"priority"` // Higher wins; ties keep storage order
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// KeywordResponseUpdate is a partial keyword response record; nil fields are
// left untouched by an update.
type KeywordResponseUpdate struct {
	ID       string   `json:"id"`
	Keywords []string `json:"keywords"`
	Response *string  `json:"response"`
	Priority *int     `json:"priority"`
	IsActive *bool    `json:"is_active"`
}

// Apply overlays the supplied fields onto k.
func (u *KeywordResponseUpdate) Apply(k *KeywordResponse) {
	if u.Keywords != nil {
		k.Keywords = u.Keywords
	}
	if u.Response != nil {
		k.Response = *u.Response
	}
	if u.Priority != nil {
		k.Priority = *u.Priority
	}
	if u.IsActive != nil {
		k.IsActive = *u.IsActive
	}
}

// PublicWidgetData is the unauthenticated payload the embedded widget loads.
type PublicWidgetData struct {
	Settings         *WidgetSettings   `json:"settings"`
	KeywordResponses []KeywordResponse `json:"keyword_responses"`
}
