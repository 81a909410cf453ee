package validation

const (
	// Password requirements. The upper bound matches bcrypt's input limit.
	MinPasswordLength = 8
	MaxPasswordLength = 72

	// Username requirements.
	MinUsernameLength = 3
	MaxUsernameLength = 30
)
