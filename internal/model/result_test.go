package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResult(t *testing.T) {
	ok := Success("done", 42)
	assert.True(t, ok.OK())
	assert.Equal(t, 42, ok.Data())
	assert.Equal(t, "done", ok.Message())
	assert.Equal(t, FailureNone, ok.Kind())
	assert.NoError(t, ok.Err())

	failed := Failure[int](FailureServer, "Already joined")
	assert.False(t, failed.OK())
	assert.Zero(t, failed.Data())
	assert.Equal(t, "Already joined", failed.Message())

	var resErr *ResultError
	assert.True(t, errors.As(failed.Err(), &resErr))
	assert.Equal(t, FailureServer, resErr.Kind)
	assert.EqualError(t, failed.Err(), "server failure: Already joined")
}

func TestRejected(t *testing.T) {
	res := Rejected[*Event](ErrNotLoggedIn, "Please login")

	assert.False(t, res.OK())
	assert.Equal(t, FailureLocal, res.Kind())
	assert.ErrorIs(t, res.Err(), ErrNotLoggedIn)
	assert.NotErrorIs(t, res.Err(), ErrOwnEvent)

	fwd := Forward[[]*Event](res)
	assert.Equal(t, FailureLocal, fwd.Kind())
	assert.Equal(t, "Please login", fwd.Message())
	assert.ErrorIs(t, fwd.Err(), ErrNotLoggedIn)
}

func TestFailureKindString(t *testing.T) {
	assert.Equal(t, "transport", FailureTransport.String())
	assert.Equal(t, "FailureKind(9)", FailureKind(9).String())
}
