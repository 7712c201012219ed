package dto

// UpdateSettingRequest replaces the value of a setting.
type UpdateSettingRequest struct {
	Value    string `json:"value" binding:"required"`
	Category string `json:"category"` // defaults to billing
}

// ListSettingsParams defines query parameters for listing settings.
type ListSettingsParams struct {
	Category string `form:"category"`
}
