package httpapi

// credentialsRequest is the body of both register and login. The plaintext
// password lives only for the duration of the request and is never logged.
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// userResponse is the outward projection of a user record. It deliberately
// has no field for the password hash, so the hash cannot leak through any
// handler that serializes this type.
type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}
