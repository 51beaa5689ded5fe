// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Yusuf Karimov

package http

import "errors"

// Sentinel errors used by the guard middleware when extracting the session
// token from the request. Callers can match against them with [errors.Is].
var (
	// ErrNoTokenCookie is returned by the guard middleware when the incoming
	// request carries no session cookie (or an empty one).
	ErrNoTokenCookie = errors.New("no session token cookie")
)
