package meta

import (
	"io"

	"github.com/pkg/errors"
)

// Application is a metadata block used by third-party applications. It
// carries a registered 4-byte identifier plus application-defined data.
type Application struct {
	// ID is the registered application identifier.
	ID string
	// Data is the application-defined payload.
	Data []byte
}

// ParseApplication parses an Application metadata block body of the given
// byte length.
func ParseApplication(r io.Reader, length int) (*Application, error) {
	if length < 4 {
		return nil, errors.Errorf("meta.ParseApplication: block too short for an application ID: %d bytes", length)
	}
	idBuf := make([]byte, 4)
	if _, err := io.ReadFull(r, idBuf); err != nil {
		return nil, errors.Wrap(err, "meta.ParseApplication: ID")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "meta.ParseApplication: data")
	}
	return &Application{ID: string(idBuf), Data: data}, nil
}
