// Package views renders the panel pages as templ components.
package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

const pageHead = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>OpenPIMS Gateway</title>
<style>
body { font-family: sans-serif; max-width: 24rem; margin: 3rem auto; color: #222; }
input { display: block; width: 100%; margin: .4rem 0 .8rem; padding: .4rem; }
button { padding: .5rem 1.2rem; }
.error { color: #b00020; margin: .8rem 0; }
.muted { color: #666; font-size: .9em; }
</style>
</head>
<body>
<h2>OpenPIMS</h2>
`

const pageFoot = `</body>
</html>
`

// Login renders the login form, optionally with an error message above it.
func Login(errMsg, serverURL string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, pageHead); err != nil {
			return err
		}
		if errMsg != "" {
			if _, err := io.WriteString(w, `<p class="error">`+templ.EscapeString(errMsg)+`</p>`); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `<form method="post" action="/login">
<label>Email</label>
<input type="email" name="email" required>
<label>Password</label>
<input type="password" name="password" required>
<label>Server</label>
<input type="url" name="serverUrl" value="`+templ.EscapeString(serverURL)+`">
<button type="submit">Login</button>
</form>
`+pageFoot)
		return err
	})
}

// Status renders the logged-in view with the active account and server.
func Status(email, serverURL string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, pageHead+
			`<p>Logged in as: `+templ.EscapeString(email)+`</p>
<p class="muted">Server: `+templ.EscapeString(serverURL)+`</p>
<form method="post" action="/logout"><button type="submit">Logout</button></form>
`+pageFoot)
		return err
	})
}
