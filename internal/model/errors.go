package model

import "errors"

var ErrNoRecord = errors.New("no record")
var ErrNotLoggedIn = errors.New("not logged in")
var ErrOwnEvent = errors.New("organizer can't join own event")
var ErrInvalidPayload = errors.New("invalid payload")
