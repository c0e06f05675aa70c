// Package web implements an HTMX-based web application mirroring the TUI functionality.
//
// # HTMX Web Application Implementation Plan
//
// # Architecture
//
// The web app replicates the five-view TUI workflow using server-side rendering
// with HTMX for dynamic updates. Each view corresponds to a template and handler:
//
//  1. Search: Server-rendered search box with hx-get and hx-trigger "keyup changed delay:300ms"
//  2. Lists: Table of the user's movie lists with hx-get for entries
//  3. List Detail: HTMX partial swap showing entries + remove buttons
//  4. Movie Detail: Metadata plus the watch-now panel filtered by subscriptions
//  5. Services: Checkbox form posting the full subscription set
//
// Core Components
//
//   - HTTP Server: reuses the chi router from internal/server with template handlers mounted alongside the JSON API
//   - Service Integration: handlers call the same repositories and catalog proxy as the API
//   - Session Management: the existing JWT carried in a cookie instead of the Authorization header
//
// Routes
//
//	GET  /app                      → Search view (requires auth)
//	GET  /app/search               → HTMX partial: search results
//	GET  /app/lists                → Lists view
//	GET  /app/lists/{id}           → HTMX partial: list entries
//	GET  /app/movies/{id}          → Movie detail with watch-now panel
//	GET  /app/services             → Subscription form
//	POST /app/services             → Replace subscriptions wholesale
//
// Templates
//
//   - base.html: Layout with navigation, auth status
//   - search.html: Input with debounced hx-get on keyup
//   - lists.html: Table with hx-get on rows
//   - entries.html: Partial template for list entries
//   - movie.html: Details plus availability windows
//   - services.html: Checkbox grid over the service catalog
//
// # State Management
//
// Unlike the TUI's in-memory snapshots, the web app holds no client state:
// every partial re-renders from the database, so the re-fetch-after-mutation
// behavior of the TUI store falls out for free.
//
// # Debounced Search
//
// The TUI's debounce gate maps onto HTMX directly: hx-trigger's delay
// modifier gives the 300ms quiet period and aborts superseded requests,
// which also covers last-request-wins ordering.
//
// Authentication Flow
//
//  1. User visits /app, redirected to /app/login if no session cookie
//  2. Login form posts to the existing /api/login handler
//  3. Token set as an HttpOnly cookie, middleware validates it on /app routes
//  4. Expired tokens redirect back to the login form
//
// Dependencies
//
//   - html/template: Server-side rendering
//   - go-chi/chi/v5: shared router with the JSON API
//
// Implementation Tasks
//
//  1. Template structure with HTMX integration
//  2. Cookie variant of the JWT middleware
//  3. Search handler rendering the results partial
//  4. Lists and entries handlers over the list repository
//  5. Movie handler combining catalog details and availability rows
//  6. Services form handler with wholesale replace
//  7. Error handling mapping the domain errors to inline fragments
//
// # Testing Strategy
//
// Use httptest:
//   - Seed an in-memory database as the API tests do
//   - Validate HTMX headers and response structure
//   - Assert partials render the same rows the JSON endpoints return
package web
