package model

import "github.com/google/uuid"

type School struct {
	ID       uuid.UUID
	Name     string
	CNPJ     string
	Director string
	Address  string
	Phone    string
}
