package entities

import "time"

// Credential guarda o hash da senha de um usuário autorizado a emitir tokens.
type Credential struct {
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
