package uuid

import (
	"github.com/gofrs/uuid/v5"
)

type UUID = uuid.UUID

var Nil = uuid.Nil

func New() UUID {
	return uuid.Must(uuid.NewV7())
}

func FromString(s string) (UUID, error) {
	return uuid.FromString(s)
}
