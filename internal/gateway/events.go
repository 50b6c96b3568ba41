package gateway

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"

	"github.com/SergeyKozhin/events-sync/internal/model"
	"github.com/gabriel-vasile/mimetype"
)

const imageField = "event-image"

func (g *Gateway) ListEvents(ctx context.Context) model.Result[[]*model.Event] {
	req, err := g.newRequest(ctx, http.MethodGet, "/event/list", nil)
	if err != nil {
		return requestFailure[[]*model.Event](err)
	}

	return call(g, req, decodeEvents)
}

func (g *Gateway) GetEvent(ctx context.Context, id string) model.Result[*model.Event] {
	req, err := g.newRequest(ctx, http.MethodGet, "/event/"+url.PathEscape(id), nil)
	if err != nil {
		return requestFailure[*model.Event](err)
	}

	return call(g, req, decodeEvent)
}

func (g *Gateway) JoinEvent(ctx context.Context, id string) model.Result[*model.Event] {
	return g.eventAction(ctx, id, "join")
}

func (g *Gateway) LeaveEvent(ctx context.Context, id string) model.Result[*model.Event] {
	return g.eventAction(ctx, id, "leave")
}

// DeleteEvent may succeed with a nil event when the server replies without data.
func (g *Gateway) DeleteEvent(ctx context.Context, id string) model.Result[*model.Event] {
	req, err := g.newRequest(ctx, http.MethodGet, fmt.Sprintf("/event/%s/delete", url.PathEscape(id)), nil)
	if err != nil {
		return requestFailure[*model.Event](err)
	}

	return call(g, req, decodeOptionalEvent)
}

func (g *Gateway) eventAction(ctx context.Context, id, action string) model.Result[*model.Event] {
	req, err := g.newRequest(ctx, http.MethodGet, fmt.Sprintf("/event/%s/%s", url.PathEscape(id), action), nil)
	if err != nil {
		return requestFailure[*model.Event](err)
	}

	return call(g, req, decodeEvent)
}

func (g *Gateway) CreateEvent(ctx context.Context, info *model.EventCreate) model.Result[*model.Event] {
	body, contentType, err := encodeCreateForm(info)
	if err != nil {
		return requestFailure[*model.Event](err)
	}

	req, err := g.newRequest(ctx, http.MethodPost, "/event/create-event", body)
	if err != nil {
		return requestFailure[*model.Event](err)
	}
	req.Header.Set("Content-Type", contentType)

	return call(g, req, decodeEvent)
}

func encodeCreateForm(info *model.EventCreate) (*bytes.Buffer, string, error) {
	if info.Image == nil {
		return nil, "", fmt.Errorf("image is missing")
	}

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	fields := []struct {
		name  string
		value string
	}{
		{"name", info.Name},
		{"date", info.Date},
		{"time", info.Time},
		{"location", info.Location},
		{"category", string(info.Category)},
		{"description", info.Description},
	}
	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f.name, err)
		}
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, imageField, escapeQuotes(info.Image.Filename)))
	h.Set("Content-Type", mimetype.Detect(info.Image.Content).String())

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("create image part: %w", err)
	}
	if _, err := part.Write(info.Image.Content); err != nil {
		return nil, "", fmt.Errorf("write image: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close form: %w", err)
	}

	return body, w.FormDataContentType(), nil
}

func escapeQuotes(s string) string {
	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '"' || s[i] == '\\' {
			b = append(b, '\\')
		}
		b = append(b, s[i])
	}
	return string(b)
}
