package contact

// Payload is the JSON body the form posts to the relay.
// The relay does not validate it; the form does before submitting.
type Payload struct {
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	Tel         string `json:"tel"`
	Email       string `json:"email"`
	AcceptTerms bool   `json:"acceptTerms"`
}
