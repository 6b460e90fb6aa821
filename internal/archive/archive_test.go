package archive

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

func TestPackageCollectsFilesAndManifest(t *testing.T) {
	dir := t.TempDir()
	classDir := filepath.Join(dir, "classes")
	if err := os.MkdirAll(filepath.Join(classDir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(classDir, "Main.class"), []byte("main"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(classDir, "sub", "P.class"), []byte("p"), 0o644); err != nil {
		t.Fatal(err)
	}

	archivePath := filepath.Join(dir, "prog.ilarc")
	if err := Package(archivePath, classDir, DefaultManifest()); err != nil {
		t.Fatalf("Package failed: %v", err)
	}

	r, err := zip.OpenReader(archivePath)
	if err != nil {
		t.Fatalf("opening archive: %v", err)
	}
	defer r.Close()

	names := map[string]bool{}
	for _, f := range r.File {
		names[f.Name] = true
	}
	for _, want := range []string{"META-INF/MANIFEST.json", "Main.class", "sub/P.class"} {
		if !names[want] {
			t.Errorf("archive missing entry %q, got %v", want, names)
		}
	}

	if _, err := os.Stat(archivePath + ".manifest.yaml"); err != nil {
		t.Errorf("expected YAML sidecar manifest: %v", err)
	}
}
