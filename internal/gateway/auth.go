package gateway

import (
	"context"
	"net/http"

	"github.com/SergeyKozhin/events-sync/internal/model"
)

func (g *Gateway) Login(ctx context.Context, creds *model.Credentials) model.Result[*model.LoginData] {
	return postJSON[*model.LoginData](ctx, g, "/auth/login", creds)
}

func (g *Gateway) GuestLogin(ctx context.Context, creds *model.Credentials) model.Result[*model.LoginData] {
	return postJSON[*model.LoginData](ctx, g, "/auth/guest-login", creds)
}

func (g *Gateway) Register(ctx context.Context, info *model.Registration) model.Result[struct{}] {
	req, err := g.newJSONRequest(ctx, http.MethodPost, "/auth/register", info)
	if err != nil {
		return requestFailure[struct{}](err)
	}

	return call(g, req, decodeNothing)
}

func (g *Gateway) VerifyEmail(ctx context.Context, email, otp string) model.Result[struct{}] {
	req, err := g.newJSONRequest(ctx, http.MethodPost, "/auth/verify-email", map[string]string{
		"email": email,
		"otp":   otp,
	})
	if err != nil {
		return requestFailure[struct{}](err)
	}

	return call(g, req, decodeNothing)
}

func (g *Gateway) ResendOTP(ctx context.Context, email string) model.Result[struct{}] {
	req, err := g.newJSONRequest(ctx, http.MethodPost, "/auth/resend-otp", map[string]string{
		"email": email,
	})
	if err != nil {
		return requestFailure[struct{}](err)
	}

	return call(g, req, decodeNothing)
}

func (g *Gateway) ProfileDetails(ctx context.Context) model.Result[*model.Profile] {
	req, err := g.newRequest(ctx, http.MethodGet, "/auth/profile-details", nil)
	if err != nil {
		return requestFailure[*model.Profile](err)
	}

	return call(g, req, decodeInto[*model.Profile])
}

func postJSON[T any](ctx context.Context, g *Gateway, endpoint string, data interface{}) model.Result[T] {
	req, err := g.newJSONRequest(ctx, http.MethodPost, endpoint, data)
	if err != nil {
		return requestFailure[T](err)
	}

	return call(g, req, decodeInto[T])
}
