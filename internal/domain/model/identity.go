package model

// Identity is one registered user of the local client. Secret is kept in
// plaintext by the current CredentialStore backing.
type Identity struct {
	Email  string
	Secret string
}
