// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging and Metrics

Wrap handlers with request logging and Prometheus recording:

	mux.HandleFunc("GET /health", middleware.WithMetrics(m, middleware.WithLogging(handler)))

WithLogging logs method, path, status and duration_ms. WithMetrics labels
requests with the matched route pattern.

# Admin Gate

	mux.HandleFunc("DELETE /scores", middleware.RequireAdmin(cfg.AdminPassword, h.ClearAll))

A missing X-Admin-Password header yields 401, a wrong one 403.

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, PATCH, DELETE, OPTIONS with headers
Content-Type and X-Admin-Password.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

DecodeAndValidate parses a body of at most 1 MiB and applies the validate
struct tags:

	var req models.SubmitScoreRequest
	if err := middleware.DecodeAndValidate(w, r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Handles X-Forwarded-For and X-Real-IP. Used in request and audit logs.
*/
package middleware
