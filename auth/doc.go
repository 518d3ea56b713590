// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth implements the admin password gate for destructive operations.

# Admin Password

Clearing scores and deleting participants require the shared password from
ADMIN_PASSWORD, sent in the X-Admin-Password header:

	if err := auth.CheckRequest(r, cfg.AdminPassword); err != nil {
		// 403
	}

This is a guard against accidental clicks, not an access-control system: judges
are not authenticated and there is a single password for everyone.
*/
package auth
