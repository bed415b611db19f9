package export

import (
	"fmt"
	"io"
	"time"

	fixzip "github.com/hidez8891/zip"
)

// Entry is one encoded frame of the bundle.
type Entry struct {
	Name string
	Data []byte
}

// WriteBundle packs entries into zip archive. Encoded images are stored
// without compression.
func WriteBundle(w io.Writer, entries []Entry, modified time.Time) error {
	zw := fixzip.NewWriter(w)
	seen := make(map[string]int, len(entries))
	for _, e := range entries {
		name := e.Name
		if n := seen[e.Name]; n > 0 {
			name = fmt.Sprintf("%d-%s", n, e.Name)
		}
		seen[e.Name]++

		fw, err := zw.CreateHeader(&fixzip.FileHeader{
			Name:     name,
			Method:   fixzip.Store,
			Modified: modified,
		})
		if err != nil {
			return fmt.Errorf("unable to add %s to bundle: %w", name, err)
		}
		if _, err := fw.Write(e.Data); err != nil {
			return fmt.Errorf("unable to write %s to bundle: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("unable to finish bundle: %w", err)
	}
	return nil
}
