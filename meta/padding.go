package meta

import (
	"io"

	"github.com/pkg/errors"
)

// verifyPadding drains the body of a Padding metadata block, erroring if any
// byte read isn't zero.
func verifyPadding(r io.Reader) error {
	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			if b != 0 {
				return errors.New("meta.verifyPadding: non-zero byte in padding block (ProtocolError)")
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "meta.verifyPadding")
		}
	}
}
