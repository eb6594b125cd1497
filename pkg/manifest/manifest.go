// Package manifest loads diagram specs from TOML manifest files.
//
// A manifest is the on-disk form of a [pipeline.Spec]:
//
//	title = "Service Overview"
//	direction = "LR"
//	format = "png"
//
//	[[clusters]]
//	id = "aws"
//	label = "AWS Cloud"
//
//	  [[clusters.nodes]]
//	  id = "api"
//	  label = "API Gateway"
//	  category = "network"
//
//	[[edges]]
//	from = "api"
//	to = ["db"]
//	label = "reads"
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/archigram/archigram/pkg/pipeline"
)

// Ext is the manifest file extension.
const Ext = ".toml"

// Load reads and decodes a TOML manifest into a spec. Unknown TOML keys
// are rejected so typos in a manifest fail loudly instead of silently
// producing an empty diagram.
func Load(path string) (pipeline.Spec, error) {
	var spec pipeline.Spec
	meta, err := toml.DecodeFile(path, &spec)
	if err != nil {
		return pipeline.Spec{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return pipeline.Spec{}, fmt.Errorf("parse %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if spec.Title == "" {
		return pipeline.Spec{}, fmt.Errorf("parse %s: title is required", path)
	}
	return spec, nil
}

// Discover lists manifest files in dir, sorted by name. Only regular
// files with the manifest extension are returned.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}
	var manifests []string
	for _, e := range entries {
		if e.Type().IsRegular() && filepath.Ext(e.Name()) == Ext {
			manifests = append(manifests, filepath.Join(dir, e.Name()))
		}
	}
	slices.Sort(manifests)
	return manifests, nil
}
