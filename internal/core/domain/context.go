package domain

// View identifies the navigation tab the client should render.
type View string

const (
	ViewDashboard View = "DASHBOARD"
	ViewRecaps    View = "RECAPS"
	ViewCalendar  View = "CALENDAR"
	ViewDocuments View = "DOCUMENTS"
	ViewFinances  View = "FINANCES"
	ViewAssistant View = "ASSISTANT"
)

// DefaultView is where a role switch lands.
const DefaultView = ViewDashboard

// IsValid reports whether v is a known view.
func (v View) IsValid() bool {
	switch v {
	case ViewDashboard, ViewRecaps, ViewCalendar, ViewDocuments, ViewFinances, ViewAssistant:
		return true
	}
	return false
}

// AppState is the mutable session state owned by the context controller.
type AppState struct {
	OwnerID           string       `json:"ownerID"`
	ActiveRole        UserRole     `json:"activeRole"`
	SelectedSubjectID string       `json:"selectedSubjectID,omitempty"`
	DisplayCurrency   CurrencyCode `json:"displayCurrency"`
	ActiveView        View         `json:"activeView"`
}

// ViewingContext is the input of the visibility filter.
type ViewingContext struct {
	ActorRole         UserRole
	ActorID           string
	SelectedSubjectID string
	OwnerID           string
}

// SubjectID returns whose entities are in scope: the actor itself for a manager,
// the selected subject for the owner. Empty means nothing is in scope.
func (vc ViewingContext) SubjectID() string {
	if vc.ActorRole == RoleManager {
		return vc.ActorID
	}
	return vc.SelectedSubjectID
}
