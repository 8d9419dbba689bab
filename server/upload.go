package server

import (
	"crypto/rand"
	"encoding/hex"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

const maxUploadBytes = 100 << 20

// handleUpload stores one multipart file under the data directory. A name
// collision renames the incoming file with a short random suffix instead
// of overwriting. The response is always {"status":"success"} once the
// bytes are on disk; rename failures after the fact are logged only.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	dir := s.cfg.StorageDir()
	if err := os.MkdirAll(dir, 0o700); err != nil {
		s.serverError(w, err)
		return
	}

	name := filepath.Base(header.Filename)
	dest := filepath.Join(dir, name)
	if _, err := os.Stat(dest); err == nil {
		renamed := suffixedName(name)
		s.log.Printf("upload collision on %s, storing as %s", name, renamed)
		dest = filepath.Join(dir, renamed)
	}

	out, err := os.Create(dest)
	if err != nil {
		s.serverError(w, err)
		return
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		s.log.Errorf("upload write failed for %s: %v", dest, err)
		os.Remove(dest)
		s.serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// suffixedName inserts a 4-character random tag before the extension so
// repeated uploads of the same file name stay distinct.
func suffixedName(name string) string {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	buf := make([]byte, 2)
	if _, err := rand.Read(buf); err != nil {
		return stem + "-copy" + ext
	}
	return stem + hex.EncodeToString(buf) + ext
}
