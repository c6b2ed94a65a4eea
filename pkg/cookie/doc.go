// Package cookie manages plain cookies and encrypted flash values.
//
// Plain cookies need no configuration:
//
//	m := cookie.New(cookie.WithSecure(true))
//	m.Set(w, "lang", "ka", 365*24*3600)
//	lang, err := m.Get(r, "lang")
//
// With a 32+ byte secret, values are encoded with gorilla/securecookie
// (HMAC-SHA256 plus AES-CTR). Flash values are read once and deleted:
//
//	m := cookie.New(cookie.WithSecret(os.Getenv("FORM_COOKIE_SECRET")))
//	_ = m.SetFlash(w, "form", Notice{Kind: "success"})
//	// after the redirect
//	var n Notice
//	err := m.Flash(w, r, "form", &n)
//
// Encrypted operations return [ErrNoSecret] when no secret is configured.
package cookie
