package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/SergeyKozhin/events-sync/internal/model"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const maxResponseSize = 10 << 20

const (
	msgUnreachable = "unable to reach the server"
	msgMalformed   = "the server sent a malformed response"
	msgFailed      = "the request could not be completed"
)

// Gateway issues calls to the remote events API and normalizes every outcome
// into a model.Result. It never returns a bare error.
type Gateway struct {
	logger  *zap.SugaredLogger
	client  *http.Client
	apiURL  string
	baseURL string
	creds   credentials
}

type credentials interface {
	Token() (string, bool)
}

func New(logger *zap.SugaredLogger, client *http.Client, baseURL string, creds credentials) *Gateway {
	if client == nil {
		client = http.DefaultClient
	}
	baseURL = strings.TrimRight(baseURL, "/")

	return &Gateway{
		logger:  logger,
		client:  client,
		apiURL:  baseURL + "/api",
		baseURL: baseURL,
		creds:   creds,
	}
}

// ImageURL resolves an event image reference against the server.
func (g *Gateway) ImageURL(image string) string {
	if image == "" {
		return ""
	}
	return g.baseURL + "/images/" + url.PathEscape(image)
}

func (g *Gateway) newRequest(ctx context.Context, method, endpoint string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, g.apiURL+endpoint, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	if token, ok := g.creds.Token(); ok {
		(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(req)
	}

	return req, nil
}

func (g *Gateway) newJSONRequest(ctx context.Context, method, endpoint string, data interface{}) (*http.Request, error) {
	js, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	req, err := g.newRequest(ctx, method, endpoint, bytes.NewReader(js))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return req, nil
}

func call[T any](g *Gateway, req *http.Request, decode func(json.RawMessage) (T, error)) model.Result[T] {
	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Debugw("gateway transport error", "method", req.Method, "url", req.URL.String(), "err", err)
		return model.Failure[T](model.FailureTransport, transportMessage(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		g.logger.Debugw("gateway read error", "url", req.URL.String(), "err", err)
		return model.Failure[T](model.FailureTransport, transportMessage(err))
	}

	env := &envelope{}
	if err := json.Unmarshal(body, env); err != nil || env.Success == nil {
		g.logger.Debugw("gateway malformed response", "url", req.URL.String(), "status", resp.StatusCode)
		return model.Failure[T](model.FailureTransport, msgMalformed)
	}

	if !*env.Success {
		msg := env.Message
		if msg == "" {
			msg = msgFailed
		}
		return model.Failure[T](model.FailureServer, msg)
	}

	data, err := decode(env.Data)
	if err != nil {
		g.logger.Debugw("gateway malformed data", "url", req.URL.String(), "err", err)
		return model.Failure[T](model.FailureTransport, msgMalformed)
	}

	return model.Success(env.Message, data)
}

func transportMessage(err error) string {
	if errors.Is(err, context.Canceled) {
		return msgUnreachable + ": request canceled"
	}
	return fmt.Sprintf("%s: %v", msgUnreachable, err)
}

func isNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

func decodeEvent(raw json.RawMessage) (*model.Event, error) {
	if isNull(raw) {
		return nil, errors.New("event expected")
	}
	return DecodeEvent(raw)
}

// decodeOptionalEvent accepts a null payload, as some actions reply without data.
func decodeOptionalEvent(raw json.RawMessage) (*model.Event, error) {
	if isNull(raw) {
		return nil, nil
	}
	return DecodeEvent(raw)
}

func decodeEvents(raw json.RawMessage) ([]*model.Event, error) {
	if isNull(raw) {
		return []*model.Event{}, nil
	}

	var dtos []*eventDTO
	if err := json.Unmarshal(raw, &dtos); err != nil {
		return nil, err
	}

	res := make([]*model.Event, 0, len(dtos))
	for i, d := range dtos {
		if d == nil {
			return nil, fmt.Errorf("event %d is null", i)
		}
		e, err := mapToEvent(d)
		if err != nil {
			return nil, err
		}
		res = append(res, e)
	}

	return res, nil
}

func decodeNothing(json.RawMessage) (struct{}, error) {
	return struct{}{}, nil
}

func decodeInto[T any](raw json.RawMessage) (T, error) {
	var v T
	if isNull(raw) {
		return v, nil
	}
	err := json.Unmarshal(raw, &v)
	return v, err
}

func requestFailure[T any](err error) model.Result[T] {
	return model.Failure[T](model.FailureTransport, fmt.Sprintf("unable to build request: %v", err))
}
