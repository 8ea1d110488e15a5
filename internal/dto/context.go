package dto

import "github.com/SscSPs/ops_tracker/internal/core/domain"

// SwitchRoleRequest toggles the active role.
type SwitchRoleRequest struct {
	Role domain.UserRole `json:"role" binding:"required,oneof=OWNER MANAGER"`
}

// SelectSubjectRequest picks which manager the owner is inspecting.
type SelectSubjectRequest struct {
	SubjectID string `json:"subjectID" binding:"required"`
}

// SetDisplayCurrencyRequest changes the currency used for aggregate figures.
type SetDisplayCurrencyRequest struct {
	CurrencyCode string `json:"currencyCode" binding:"required"`
}

// SetActiveViewRequest changes the navigation tab.
type SetActiveViewRequest struct {
	View domain.View `json:"view" binding:"required,oneof=DASHBOARD RECAPS CALENDAR DOCUMENTS FINANCES ASSISTANT"`
}

// ContextResponse describes the session state together with the resolved subject.
type ContextResponse struct {
	State    domain.AppState `json:"state"`
	Actor    *UserResponse   `json:"actor,omitempty"`
	Subject  *UserResponse   `json:"subject,omitempty"`
	Managers []UserResponse  `json:"managers"`
}
