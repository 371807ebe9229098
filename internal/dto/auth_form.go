package dto

// RegisterForm is the registration submission.
type RegisterForm struct {
	Username        string `form:"username" binding:"required,min=4,max=25"`
	Password        string `form:"password" binding:"required"`
	ConfirmPassword string `form:"confirm_password" binding:"required,eqfield=Password"`
}

// LoginForm is the login submission. Validation is deliberately loose: any
// mismatch ends in the same generic error either way.
type LoginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}
