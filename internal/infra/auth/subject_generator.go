package auth

import (
	"authsvc/internal/domain/service"
	"authsvc/internal/errors"

	"github.com/google/uuid"
)

type uuidSubjectGenerator struct{}

// NewSubjectGenerator returns a generator of random (version 4) UUID strings.
func NewSubjectGenerator() service.SubjectGenerator {
	return uuidSubjectGenerator{}
}

func (uuidSubjectGenerator) NewSubjectID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", errors.Wrap(err, "uuid.NewRandom")
	}

	return id.String(), nil
}
