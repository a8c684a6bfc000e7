package model

import (
	"encoding/gob"
	"io"
	"os"

	"github.com/ezoic/sml/pkg/errors"
)

// SaveModel writes m to filename with encoding/gob. m must be gob-encodable,
// either through exported fields or a GobEncode method.
func SaveModel(m interface{}, filename string) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", filename)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "failed to close %s", filename)
		}
	}()

	return SaveModelToWriter(m, file)
}

// LoadModel reads a model written by SaveModel into m, which must be a
// pointer.
func LoadModel(m interface{}, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return errors.Wrapf(err, "failed to open %s", filename)
	}
	defer func() { _ = file.Close() }()

	return LoadModelFromReader(m, file)
}

// SaveModelToWriter gob-encodes m to w.
func SaveModelToWriter(m interface{}, w io.Writer) error {
	if m == nil {
		return errors.NewValueError("SaveModelToWriter", "model cannot be nil")
	}
	if err := gob.NewEncoder(w).Encode(m); err != nil {
		return errors.Wrap(err, "failed to encode model")
	}
	return nil
}

// LoadModelFromReader gob-decodes a model from r into m.
func LoadModelFromReader(m interface{}, r io.Reader) error {
	if m == nil {
		return errors.NewValueError("LoadModelFromReader", "model cannot be nil")
	}
	if err := gob.NewDecoder(r).Decode(m); err != nil {
		return errors.Wrap(err, "failed to decode model")
	}
	return nil
}
