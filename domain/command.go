package domain

type CreateAccountCommand struct {
	Email    string
	Password string
	Name     string
}

// UpdateAccountCommand overwrites only the non-nil fields.
type UpdateAccountCommand struct {
	Email    *string
	Password *string
	Name     *string
}

type PostMessageCommand struct {
	UserID  string
	Content string
}
