package domain

// Organization represents a campus organization document. Events submitted
// under an organization sit in PendingEvents until an admin approves them.
type Organization struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Bio            string   `json:"bio,omitempty"`
	SuperAdmin     string   `json:"superAdmin,omitempty"`
	Admins         []string `json:"admins,omitempty"`
	Members        []string `json:"members,omitempty"`
	Events         []string `json:"events,omitempty"`
	PendingMembers []string `json:"pendingMembers,omitempty"`
	PendingEvents  []string `json:"pendingEvents,omitempty"`
	ProfileImage   string   `json:"profileImage,omitempty"`
}

// OrganizationFromDocument maps an organization document with defaults.
func OrganizationFromDocument(id string, data map[string]interface{}) Organization {
	return Organization{
		ID:             id,
		Name:           stringField(data, "name"),
		Bio:            stringField(data, "bio"),
		SuperAdmin:     stringField(data, "superAdmin"),
		Admins:         stringSliceField(data, "admins"),
		Members:        stringSliceField(data, "members"),
		Events:         stringSliceField(data, "events"),
		PendingMembers: stringSliceField(data, "pendingMembers"),
		PendingEvents:  stringSliceField(data, "pendingEvents"),
		ProfileImage:   stringField(data, "profileImage"),
	}
}
