package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// UploadURLPrefix is where uploaded images are served from.
const UploadURLPrefix = "/uploads/"

type UploadsHandler struct {
	dir string
}

func NewUploadsHandler(dir string) *UploadsHandler {
	return &UploadsHandler{dir: dir}
}

// Upload serves POST /api/uploads. It accepts a single multipart
// "file" field, requires an image/* MIME type, writes the bytes under
// the public upload directory with a timestamp-prefixed name and
// returns the relative URL. The payload is stored verbatim; there is
// no size cap or re-encoding.
func (h *UploadsHandler) Upload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		// Browser gave nothing useful; sniff the first bytes instead.
		buf := make([]byte, 512)
		n, _ := io.ReadFull(file, buf)
		contentType = http.DetectContentType(buf[:n])
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			respondError(w, http.StatusInternalServerError, "failed to read upload")
			return
		}
	}
	if !strings.HasPrefix(contentType, "image/") {
		respondError(w, http.StatusBadRequest, "file must be an image")
		return
	}

	if err := os.MkdirAll(h.dir, 0o755); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to store upload")
		return
	}

	filename := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), sanitizeFilename(header.Filename))
	dst, err := os.Create(filepath.Join(h.dir, filename))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to store upload")
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to store upload")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"url": UploadURLPrefix + filename})
}

// sanitizeFilename strips any path components and characters that
// would not survive a URL.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "upload"
	}
	return b.String()
}
