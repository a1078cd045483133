package domain

import "encoding/json"

// UserProfile identifies the authenticated dispatcher.
type UserProfile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// ProfileFromPayload extracts a profile from a verification response body.
// The backend wraps the profile as {user: {...}} on some deployments and
// returns it bare on others.
func ProfileFromPayload(data any) *UserProfile {
	if data == nil {
		return nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil
	}

	var wrapped struct {
		User *UserProfile `json:"user"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.User != nil && !wrapped.User.empty() {
		return wrapped.User
	}

	var profile UserProfile
	if err := json.Unmarshal(raw, &profile); err != nil || profile.empty() {
		return nil
	}
	return &profile
}

func (u UserProfile) empty() bool {
	return u.ID == "" && u.Username == "" && u.Email == ""
}
