package archive

import (
	"archive/zip"
	"fmt"
	"time"

	"phirapack/internal/manifest"
	"phirapack/internal/packerr"
)

// Entry describes one archive member.
type Entry struct {
	Name           string    `json:"name"`
	Size           uint64    `json:"size"`
	CompressedSize uint64    `json:"compressed_size"`
	Modified       time.Time `json:"modified"`
	Method         uint16    `json:"method"`
}

// List returns the members of an archive in stored order.
func List(archivePath string) ([]Entry, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, packerr.Wrap(packerr.ErrArchive, "inspect", "open", archivePath, err)
	}
	defer r.Close()

	entries := make([]Entry, 0, len(r.File))
	for _, f := range r.File {
		entries = append(entries, Entry{
			Name:           f.Name,
			Size:           f.UncompressedSize64,
			CompressedSize: f.CompressedSize64,
			Modified:       f.Modified,
			Method:         f.Method,
		})
	}
	return entries, nil
}

// ReadManifest decodes the info.yml member of an archive.
func ReadManifest(archivePath string) (manifest.Manifest, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return manifest.Manifest{}, packerr.Wrap(packerr.ErrArchive, "inspect", "open", archivePath, err)
	}
	defer r.Close()

	rc, err := r.Open(manifest.FileName)
	if err != nil {
		return manifest.Manifest{}, packerr.Wrap(packerr.ErrArchive, "inspect", "open manifest", archivePath, fmt.Errorf("%s: %w", manifest.FileName, err))
	}
	defer rc.Close()
	return manifest.Read(rc)
}
