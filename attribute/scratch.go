package attribute

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"

	"github.com/crmarques/restrecord/faults"
)

var base64Encodings = []*base64.Encoding{
	base64.StdEncoding,
	base64.RawStdEncoding,
	base64.URLEncoding,
	base64.RawURLEncoding,
}

// PendingFiles lists scratch files awaiting Cleanup.
func (s *Store) PendingFiles() []string {
	return append([]string(nil), s.pending...)
}

// Cleanup deletes every pending scratch file. Files that are already gone are
// not an error. It is safe to call repeatedly.
func (s *Store) Cleanup() error {
	var result *multierror.Error
	for len(s.pending) > 0 {
		last := len(s.pending) - 1
		path := s.pending[last]
		s.pending = s.pending[:last]

		if err := s.fs.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			result = multierror.Append(result, err)
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return faults.NewTypedError(faults.InternalError, "failed to remove scratch files", err)
	}
	return nil
}

func (s *Store) materialize(field string, value any) error {
	encoded, ok := value.(string)
	if !ok {
		return faults.NewTypedError(faults.ValidationError, "file field "+field+" expects a base64 string", nil)
	}

	data, err := decodeBase64(encoded)
	if err != nil {
		return faults.NewTypedError(faults.ValidationError, "file field "+field+" is not valid base64", err)
	}

	if err := s.fs.MkdirAll(s.scratchDir, 0o700); err != nil {
		return faults.NewTypedError(faults.InternalError, "failed to prepare scratch disk "+s.scratchDir, err)
	}

	name := "tmp_" + field + "_" + uuid.NewString() + mimetype.Detect(data).Extension()
	path := filepath.Join(s.scratchDir, name)
	if err := afero.WriteFile(s.fs, path, data, 0o600); err != nil {
		return faults.NewTypedError(faults.InternalError, "failed to write scratch file "+path, err)
	}

	s.pending = append(s.pending, path)
	s.put(field, path)
	return nil
}

func decodeBase64(encoded string) ([]byte, error) {
	payload := strings.TrimSpace(encoded)
	if strings.HasPrefix(payload, "data:") {
		if _, after, found := strings.Cut(payload, "base64,"); found {
			payload = after
		}
	}
	payload = strings.Join(strings.Fields(payload), "")

	var firstErr error
	for _, encoding := range base64Encodings {
		data, err := encoding.DecodeString(payload)
		if err == nil {
			return data, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, firstErr
}
