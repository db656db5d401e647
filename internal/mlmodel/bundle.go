package mlmodel

import (
	"archive/tar"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"
)

// Bundle file names inside the artifact archive.
const (
	manifestFile = "manifest.json"
	featuresFile = "features.json"
	encoderFile  = "encoder.json"
	imputerFile  = "imputer.json"
	forestFile   = "forest.json"
	labelsFile   = "labels.json"
)

// Manifest identifies the artifact and fixes the classifier's class order.
type Manifest struct {
	Version int      `json:"version"`
	Classes []string `json:"classes"`
}

// Bundle is the loaded pre-trained artifact: the scoring pipeline, the
// ordered feature list it expects, and the display-label table for
// attribution output.
type Bundle struct {
	Manifest Manifest
	Features []string
	Labels   map[string]string
	Pipeline *Pipeline
}

// ClassIndex returns the position of name in the manifest class order, or
// -1 when absent.
func (b *Bundle) ClassIndex(name string) int {
	for i, c := range b.Manifest.Classes {
		if c == name {
			return i
		}
	}
	return -1
}

// LoadBundle reads the tar.gz artifact at p. A missing file or malformed
// document is an unrecoverable initialization failure for the caller.
func LoadBundle(p string) (*Bundle, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, fmt.Errorf("open model bundle: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("model bundle %s: %w", p, err)
	}
	defer gz.Close()

	var (
		manifest Manifest
		features []string
		encoder  Encoder
		imputer  Imputer
		forest   Forest
		labels   map[string]string
		seen     = map[string]bool{}
	)

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("model bundle %s: %w", p, err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}

		name := path.Base(hdr.Name)
		var dst any
		switch name {
		case manifestFile:
			dst = &manifest
		case featuresFile:
			dst = &features
		case encoderFile:
			dst = &encoder
		case imputerFile:
			dst = &imputer
		case forestFile:
			dst = &forest
		case labelsFile:
			dst = &labels
		default:
			continue
		}
		if err := json.NewDecoder(tr).Decode(dst); err != nil {
			return nil, fmt.Errorf("model bundle %s: decode %s: %w", p, name, err)
		}
		seen[name] = true
	}

	for _, name := range []string{manifestFile, featuresFile, encoderFile, imputerFile, forestFile, labelsFile} {
		if !seen[name] {
			return nil, fmt.Errorf("model bundle %s: missing %s", p, name)
		}
	}
	if len(manifest.Classes) != forest.NClasses {
		return nil, fmt.Errorf("model bundle %s: manifest lists %d classes, forest has %d",
			p, len(manifest.Classes), forest.NClasses)
	}

	pipeline, err := NewPipeline(features, encoder, imputer, &forest)
	if err != nil {
		return nil, fmt.Errorf("model bundle %s: %w", p, err)
	}

	return &Bundle{
		Manifest: manifest,
		Features: features,
		Labels:   labels,
		Pipeline: pipeline,
	}, nil
}
