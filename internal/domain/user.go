package domain

// UserProfile holds the user document fields the feed and social services
// read. Interests, organizations, friends, and yourEvents together form the
// feed context.
type UserProfile struct {
	ID                    string   `json:"id"`
	NetID                 string   `json:"netID"`
	FirstName             string   `json:"firstName,omitempty"`
	LastName              string   `json:"lastName,omitempty"`
	FullName              string   `json:"fullName,omitempty"`
	Email                 string   `json:"email,omitempty"`
	Interests             []string `json:"interests,omitempty"`
	JoinedOrganizations   []string `json:"joinedOrganizations,omitempty"`
	Friends               []string `json:"friends,omitempty"`
	YourEvents            []string `json:"yourEvents,omitempty"`
	PendingFriendRequests []string `json:"pendingFriendRequests,omitempty"`
	ProfileImage          string   `json:"profileImage,omitempty"`
}

// UserFromDocument maps a user document; every field is optional.
func UserFromDocument(id string, data map[string]interface{}) UserProfile {
	return UserProfile{
		ID:                    id,
		NetID:                 stringField(data, "netID"),
		FirstName:             stringField(data, "firstName"),
		LastName:              stringField(data, "lastName"),
		FullName:              stringField(data, "fullName"),
		Email:                 stringField(data, "email"),
		Interests:             stringSliceField(data, "interests"),
		JoinedOrganizations:   stringSliceField(data, "joinedOrganizations"),
		Friends:               stringSliceField(data, "friends"),
		YourEvents:            stringSliceField(data, "yourEvents"),
		PendingFriendRequests: stringSliceField(data, "pendingFriendRequests"),
		ProfileImage:          stringField(data, "profileImage"),
	}
}

// InterestCategories is the fixed set of interest tags users pick from and
// events are categorized with.
var InterestCategories = []string{
	"Sports", "Technology", "Music", "Art", "Health", "Kinesiology",
	"Computing", "Food", "Finance", "Education", "Business", "Gaming",
}
