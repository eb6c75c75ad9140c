package api

import (
	"bufio"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/ignite/impact-dashboard/internal/datanorm"
	"github.com/ignite/impact-dashboard/internal/domain"
	"github.com/ignite/impact-dashboard/internal/pkg/httputil"
	"github.com/ignite/impact-dashboard/internal/pkg/logger"
)

// uploadFields are the multipart form fields checked for the CSV, in order.
var uploadFields = []string{"csv", "file"}

// maxMemory is how much of a multipart form is buffered in memory before
// spilling to temp files.
const maxMemory = 8 << 20

var errNoFile = errors.New("no csv file provided")

func (h *Handlers) UploadVolunteers(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, domain.EntityVolunteers)
}

func (h *Handlers) UploadMembers(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, domain.EntityMembers)
}

func (h *Handlers) UploadShifts(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, domain.EntityShifts)
}

func (h *Handlers) UploadDonations(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, domain.EntityDonations)
}

func (h *Handlers) UploadActivities(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, domain.EntityActivities)
}

// upload ingests one CSV for entity and reports how many rows were stored.
//
//	POST /api/{entity}/upload
func (h *Handlers) upload(w http.ResponseWriter, r *http.Request, entity domain.EntityType) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	src, err := csvSource(r)
	if err != nil {
		switch {
		case httputil.IsTooLarge(err):
			httputil.TooLarge(w, h.maxUpload)
		case errors.Is(err, errNoFile):
			httputil.BadRequest(w, "No CSV file provided")
		default:
			httputil.BadRequest(w, "invalid upload: "+err.Error())
		}
		return
	}
	defer src.Close()

	res, err := h.ingest.ProcessCSV(r.Context(), entity, src)
	if err != nil {
		var perr *datanorm.ParseError
		switch {
		case httputil.IsTooLarge(err):
			httputil.TooLarge(w, h.maxUpload)
		case errors.As(err, &perr):
			logger.Warn("rejected malformed csv", "entity", entity, "error", err)
			httputil.BadRequest(w, perr.Error())
		default:
			httputil.InternalError(w, err)
		}
		return
	}

	httputil.OK(w, res)
}

// csvSource locates the uploaded CSV: a multipart file under one of
// uploadFields, or else the raw request body.
func csvSource(r *http.Request) (io.ReadCloser, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if strings.HasPrefix(mediaType, "multipart/") {
		if err := r.ParseMultipartForm(maxMemory); err != nil {
			return nil, err
		}
		for _, field := range uploadFields {
			f, _, err := r.FormFile(field)
			if err == nil {
				return f, nil
			}
			if !errors.Is(err, http.ErrMissingFile) {
				return nil, err
			}
		}
		return nil, errNoFile
	}

	body := bufio.NewReader(r.Body)
	if _, err := body.Peek(1); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errNoFile
		}
		return nil, err
	}
	return io.NopCloser(body), nil
}
