package authenticating

import (
	"errors"
)

// Erros de validação da sessão
var (
	ErrInvalidToken   = errors.New("token inválido")
	ErrExpiredToken   = errors.New("token expirado")
	ErrMissingSubject = errors.New("token sem identificação do usuário")
)
