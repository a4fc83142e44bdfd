// Package http implements the server's REST handlers.
//
// Routes:
//   - GET  /                          bootstrap page with the CSRF token
//   - GET  /health                    liveness and upstream breaker state
//   - POST /api/proxy/                forward {url, method, data} to the site
//   - GET  /api/current-food-drink/   {success, data:{foodIcon, drinkIcon}}
//   - GET  /api/current-trick/        {success, trick}
//   - POST /api/login/ ... /api/auto/ bot actions, {success, message}
//
// Every handler works on the Bot of the caller's browser session, so the
// proxy and the bot actions share one remote login.
package http
