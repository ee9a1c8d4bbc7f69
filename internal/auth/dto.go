package auth

// LoginDTO carries the form-encoded login fields. Username accepts either
// the account email or the username.
type LoginDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token"`
}

type ChangePasswordDTO struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d LoginDTO) Validate() error {
	if d.Username == "" {
		return ValidationError{Msg: "username is required"}
	}
	if d.Password == "" {
		return ValidationError{Msg: "password is required"}
	}
	return nil
}

func (d RefreshTokenDTO) Validate() error {
	if d.RefreshToken == "" {
		return ValidationError{Msg: "refresh_token is required"}
	}
	return nil
}

func (d ChangePasswordDTO) Validate() error {
	if d.CurrentPassword == "" {
		return ValidationError{Msg: "current_password is required"}
	}
	if len(d.NewPassword) < 8 {
		return ValidationError{Msg: "new_password must be at least 8 characters"}
	}
	return nil
}
