package models

// GuestID is the sentinel id of the guest user.
const GuestID int64 = 0

type UserPoints struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Lifetime int64  `json:"lifetime"`
	Score    int64  `json:"score"`
}

func Guest() UserPoints {
	return UserPoints{ID: GuestID, Username: "Guest"}
}

func (u UserPoints) IsGuest() bool {
	return u.ID == GuestID
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type NewAccount struct {
	StudentID string `json:"student_id"`
	FullName  string `json:"full_name"`
	Username  string `json:"username"`
	Password  string `json:"password"`
}
