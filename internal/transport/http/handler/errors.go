package handler

const (
	errInternalServer     = "Internal server error"
	errDuplicateEmail     = "Email already registered"
	errInvalidCredentials = "Incorrect email or password"
	errPasswordTooLong    = "Password must be at most 72 bytes"
	errResumeNotFound     = "Resume not found"
	errNothingToUpdate    = "Nothing to update"
	errInvalidID          = "Invalid resume id"
	errUnauthorized       = "Not authenticated"
)
