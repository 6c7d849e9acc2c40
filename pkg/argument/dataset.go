package argument

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/argwheel/pkg/errors"
)

// Dataset is one debate document.
type Dataset struct {
	NewNodes []Proposition `json:"new_nodes"`
}

// rawDataset defers decoding of new_nodes so a non-array value can be
// reported precisely instead of as a generic type mismatch.
type rawDataset struct {
	NewNodes json.RawMessage `json:"new_nodes"`
}

// Decode reads a dataset from r and checks the load contract: new_nodes is
// a non-empty array containing at least one thesis. Decode does not close r.
func Decode(r io.Reader) (*Dataset, error) {
	var raw rawDataset
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode dataset")
	}

	body := bytes.TrimSpace(raw.NewNodes)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return nil, errors.New(errors.ErrCodeInvalidDataset, "dataset has no new_nodes field")
	}
	if body[0] != '[' {
		return nil, errors.New(errors.ErrCodeInvalidDataset, "new_nodes must be an array")
	}

	var ds Dataset
	if err := json.Unmarshal(body, &ds.NewNodes); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode new_nodes")
	}
	if err := ds.CheckLoadable(); err != nil {
		return nil, err
	}
	return &ds, nil
}

// Unmarshal decodes a dataset from bytes. See [Decode].
func Unmarshal(data []byte) (*Dataset, error) {
	return Decode(bytes.NewReader(data))
}

// ReadFile opens path and decodes it. See [Decode].
func ReadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeDatasetNotFound, err, "dataset %s not found", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	ds, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// CheckLoadable reports the errors that must stop a load: an empty node
// list or the absence of a thesis.
func (d *Dataset) CheckLoadable() error {
	if len(d.NewNodes) == 0 {
		return errors.New(errors.ErrCodeEmptyDataset, "dataset contains no nodes")
	}
	if _, ok := d.Thesis(); !ok {
		return errors.New(errors.ErrCodeNoThesis, "dataset contains no thesis node")
	}
	return nil
}

// Thesis returns the first thesis proposition in input order.
func (d *Dataset) Thesis() (Proposition, bool) {
	for _, p := range d.NewNodes {
		if p.IsThesis() {
			return p, true
		}
	}
	return Proposition{}, false
}

// Write encodes the dataset as indented JSON.
func (d *Dataset) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Marshal returns the canonical JSON encoding of the dataset. Two datasets
// with the same content always marshal to the same bytes, which makes the
// result suitable for content hashing.
func (d *Dataset) Marshal() ([]byte, error) {
	return json.Marshal(d)
}

// Hash returns the hex SHA-256 of the canonical encoding. It identifies the
// dataset content in cache keys and sessions.
func (d *Dataset) Hash() (string, error) {
	data, err := d.Marshal()
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
