package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/SergeyKozhin/events-sync/internal/model"
)

const (
	formMemory     = 1 << 20
	imageFormField = "event-image"
)

var errFileTooBig = errors.New("file too big")

// readEventCreate reads the multipart create form. Missing fields are left
// empty for the store to reject.
func (a *Api) readEventCreate(w http.ResponseWriter, r *http.Request) (*model.EventCreate, error) {
	r.Body = http.MaxBytesReader(w, r.Body, a.maxFileSize+formMemory)
	if err := r.ParseMultipartForm(formMemory); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, errFileTooBig
		}
		return nil, fmt.Errorf("body must be a multipart form: %w", err)
	}

	info := &model.EventCreate{
		Name:        r.FormValue("name"),
		Date:        r.FormValue("date"),
		Time:        r.FormValue("time"),
		Location:    r.FormValue("location"),
		Category:    model.Category(r.FormValue("category")),
		Description: r.FormValue("description"),
	}

	multipartFile, headers, err := r.FormFile(imageFormField)
	switch {
	case errors.Is(err, http.ErrMissingFile):
		return info, nil
	case err != nil:
		return nil, err
	}
	defer multipartFile.Close()

	if headers.Size > a.maxFileSize {
		return nil, errFileTooBig
	}

	content, err := io.ReadAll(io.LimitReader(multipartFile, a.maxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", imageFormField, err)
	}
	if int64(len(content)) > a.maxFileSize {
		return nil, errFileTooBig
	}

	info.Image = &model.Upload{
		Filename: headers.Filename,
		Content:  content,
	}

	return info, nil
}
