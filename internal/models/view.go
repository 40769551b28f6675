package models

// HomeView carries everything the public listing needs; filtering happens
// on the client.
type HomeView struct {
	Events        []Event              `json:"events"`
	Categories    []Category           `json:"categories"`
	Organizations []OrganizationOption `json:"organizations"`
}

type EventDetailView struct {
	Event        *Event        `json:"event"`
	Organization *Organization `json:"organization"`
	Categories   []Category    `json:"categories"`
	ShareURL     string        `json:"share_url"`
}

// DashboardView is filled differently per role: admins get every
// organization and event, organizations only their own events.
type DashboardView struct {
	Principal     *Principal     `json:"principal"`
	Organization  *Organization  `json:"organization,omitempty"`
	Organizations []Organization `json:"organizations,omitempty"`
	Events        []Event        `json:"events"`
	Categories    []Category     `json:"categories"`
}

type PageView struct {
	Page string `json:"page"`
}
