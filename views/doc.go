// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package views renders the public HTML pages as templ components. All
// user-supplied text is HTML-escaped.
package views
