package http

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/sagarc03/filegate"
	"github.com/sagarc03/filegate/filesystem"
	"github.com/sagarc03/filegate/metrics"
)

// chunkSize bounds every read from disk, so reads never run ahead of what the
// client has accepted.
const chunkSize = 8 << 10

type responsePlan struct {
	status int
	offset int64
	length int64
	ranged *filegate.ByteRange
}

func (p responsePlan) outcome() string {
	if p.ranged != nil {
		return metrics.OutcomePartial
	}
	return metrics.OutcomeServed
}

// planResponse picks a full or single-range response. Anything but one
// satisfiable range is served as the whole file.
func planResponse(r *http.Request, t filegate.Target) responsePlan {
	size := t.Info.Size()

	if br, ok := filegate.ParseRange(r.Header.Get("Range"), size); ok {
		return responsePlan{
			status: http.StatusPartialContent,
			offset: br.Start,
			length: br.Length,
			ranged: &br,
		}
	}

	return responsePlan{status: http.StatusOK, length: size}
}

func (h *Handler) setValidators(hdr http.Header, t filegate.Target) {
	if cc := h.serve.CacheControl(); cc != "" {
		hdr.Set("Cache-Control", cc)
	}
	if h.serve.ETagEnabled() {
		hdr.Set("ETag", filegate.ETag(t.Info))
	}
	if h.serve.LastModifiedEnabled() {
		hdr.Set("Last-Modified", filegate.LastModified(t.Info))
	}
}

func (h *Handler) writeHeader(w http.ResponseWriter, t filegate.Target, plan responsePlan) {
	hdr := w.Header()
	h.setValidators(hdr, t)

	hdr.Set("Content-Type", filesystem.DetectContentType(t.Path))
	hdr.Set("Accept-Ranges", "bytes")
	hdr.Set("Content-Length", strconv.FormatInt(plan.length, 10))
	if plan.ranged != nil {
		hdr.Set("Content-Range", plan.ranged.ContentRange(t.Info.Size()))
	}

	w.WriteHeader(plan.status)
}

// copyChunks copies exactly n bytes from src to w in chunkSize pieces. It
// stops early when ctx is cancelled or a write fails.
func copyChunks(ctx context.Context, w io.Writer, src io.Reader, n int64) (int64, error) {
	buf := make([]byte, chunkSize)
	var written int64

	for written < n {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		want := min(int64(len(buf)), n-written)
		nr, readErr := src.Read(buf[:want])
		if nr > 0 {
			nw, writeErr := w.Write(buf[:nr])
			written += int64(nw)
			if writeErr != nil {
				return written, writeErr
			}
		}

		if readErr == io.EOF {
			if written < n {
				return written, io.ErrUnexpectedEOF
			}
			break
		}
		if readErr != nil {
			return written, readErr
		}
	}

	return written, nil
}
