package request

// RegisterRequest is the request body for registering a user
type RegisterRequest struct {
	Nickname string `json:"nickname"`
}

// RedeemCodeRequest is the request body for logging in with a code
type RedeemCodeRequest struct {
	Code string `json:"code"`
}
