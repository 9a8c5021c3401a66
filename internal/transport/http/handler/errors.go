package handler

const (
	errInternalServer     = "Internal server error"
	errEmailTaken         = "Email already registered"
	errInvalidCredentials = "Incorrect email or password"
	errTodoNotFound       = "Todo not found"
)
