// Package archive packages the assembler's output class files into a
// single archive per spec §6: a manifest naming the entry point plus
// every generated class file, recursively collected from the output
// directory, written to `<input-basename>.ilarc`.
//
// The archive format itself is a thin archive/zip wrapper: no pack
// dependency covers process-exec/zip-write boundaries any better than
// the standard library here (recorded in DESIGN.md). The manifest is
// also mirrored as a YAML sidecar via goccy/go-yaml for tooling that
// would rather not parse the packaged JSON manifest entry.
package archive

import (
	"archive/zip"
	"encoding/json"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// Manifest is the archive's entry-point descriptor, per §6's
// `{manifest-version, main-class, producer}` contract.
type Manifest struct {
	ManifestVersion string `json:"manifest-version" yaml:"manifest-version"`
	MainClass       string `json:"main-class"        yaml:"main-class"`
	Producer        string `json:"producer"           yaml:"producer"`
}

// DefaultManifest builds the manifest the driver writes for every
// successful compilation: `Main` is always the archive's entry class,
// per §4.5's main-unit convention.
func DefaultManifest() Manifest {
	return Manifest{ManifestVersion: "1.0", MainClass: "Main", Producer: "ilc"}
}

// Package walks classDir recursively, collecting every regular file
// into a zip archive at archivePath with a `META-INF/MANIFEST.json`
// entry built from manifest. It also writes a `<archivePath>.manifest.yaml`
// sidecar alongside the archive.
func Package(archivePath, classDir string, manifest Manifest) error {
	if err := writeYAMLSidecar(archivePath, manifest); err != nil {
		return err
	}

	out, err := os.Create(archivePath)
	if err != nil {
		return err
	}
	defer out.Close()

	w := zip.NewWriter(out)
	defer w.Close()

	manifestJSON, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return err
	}
	mw, err := w.Create("META-INF/MANIFEST.json")
	if err != nil {
		return err
	}
	if _, err := mw.Write(manifestJSON); err != nil {
		return err
	}

	return filepath.WalkDir(classDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(classDir, path)
		if err != nil {
			return err
		}
		return copyIntoZip(w, rel, path)
	})
}

func copyIntoZip(w *zip.Writer, name, srcPath string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := w.Create(filepath.ToSlash(name))
	if err != nil {
		return err
	}
	_, err = io.Copy(dst, src)
	return err
}

func writeYAMLSidecar(archivePath string, manifest Manifest) error {
	data, err := yaml.Marshal(manifest)
	if err != nil {
		return err
	}
	return os.WriteFile(archivePath+".manifest.yaml", data, 0o644)
}
