// Package manifest lists the datasets a host may offer.
//
// A datasets directory may contain a manifest.json holding either a bare
// array of filenames or an object with a "files" array. Without a manifest,
// every *.json file in the directory is listed, sorted by name. Names are
// validated as plain basenames, so a listed dataset can always be joined
// safely onto the directory.
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/argwheel/pkg/errors"
)

// FileName is the manifest file looked up in a datasets directory.
const FileName = "manifest.json"

type object struct {
	Files []string `json:"files"`
}

// Parse decodes manifest content. Invalid names are an error; duplicates
// are removed, keeping the first.
func Parse(data []byte) ([]string, error) {
	data = bytes.TrimSpace(data)
	var names []string
	if len(data) > 0 && data[0] == '[' {
		if err := json.Unmarshal(data, &names); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode manifest")
		}
	} else {
		var obj object
		if err := json.Unmarshal(data, &obj); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode manifest")
		}
		names = obj.Files
	}

	out := make([]string, 0, len(names))
	for _, name := range names {
		if err := errors.ValidateDatasetName(name); err != nil {
			return nil, err
		}
		if !slices.Contains(out, name) {
			out = append(out, name)
		}
	}
	return out, nil
}

// Read returns the dataset names of dir.
func Read(dir string) ([]string, error) {
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err == nil {
		return Parse(data)
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return scan(dir)
}

func scan(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "datasets directory %s not found", dir)
		}
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == FileName || !strings.EqualFold(filepath.Ext(name), ".json") {
			continue
		}
		if errors.ValidateDatasetName(name) != nil {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// Resolve validates name and returns its path under dir.
func Resolve(dir, name string) (string, error) {
	if err := errors.ValidateDatasetName(name); err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}
