package model

// Identity is the authenticated user resolved by the session gate. It is
// passed explicitly through the request context; handlers that need a user id
// receive it as a value, never through a global lookup.
type Identity struct {
	UserID string
	Email  string
}
