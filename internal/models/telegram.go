package models

// TelegramUser is the payload delivered by the Telegram login widget after its
// signature has already been verified upstream. It is consumed read-only as a
// linking credential; only the mapped profile fields are ever persisted.
type TelegramUser struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Username  string `json:"username,omitempty"`
	PhotoURL  string `json:"photo_url,omitempty"`
	AuthDate  int64  `json:"auth_date"`
	Hash      string `json:"hash"`
}
