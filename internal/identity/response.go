package identity

// Response is the single envelope returned by every authentication workflow.
// Callers branch on RequestSuccess and on Token presence; an empty Token with
// RequestSuccess=true means the caller is known but not yet phone-verified.
type Response struct {
	Token              string `json:"token,omitempty"`
	FullName           string `json:"fullName,omitempty"`
	VerificationStatus bool   `json:"verificationStatus"`
	RequestSuccess     bool   `json:"requestSuccess"`
	RequestMessage     string `json:"requestMessage,omitempty"`
}

// Success is the envelope for a fully authenticated, phone-verified outcome.
func Success(token, fullName, message string) Response {
	return Response{
		Token:              token,
		FullName:           fullName,
		VerificationStatus: true,
		RequestSuccess:     true,
		RequestMessage:     message,
	}
}

// Registered is returned after onboarding: the account exists but no token is
// issued until the phone number has been verified.
func Registered(fullName string) Response {
	return Response{FullName: fullName, RequestSuccess: true}
}

// UnverifiedResponse is returned when credentials check out but the phone
// number has not been verified yet. Distinct from Failure: the request itself
// succeeded.
func UnverifiedResponse(fullName string) Response {
	return Response{FullName: fullName, RequestSuccess: true}
}

// CodeRejected is returned when an OTP check fails. The outstanding code stays
// valid so the caller may retry without requesting a new one.
func CodeRejected() Response {
	return Response{RequestSuccess: true}
}

// Failure is the envelope for an expected, user-facing failure.
func Failure(message string) Response {
	return Response{RequestMessage: message}
}
