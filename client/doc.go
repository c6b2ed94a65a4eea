// Package client submits contact payloads to the mail relay.
//
// Submit issues exactly one POST with a JSON body and a bearer token. A
// non-2xx answer with a JSON body comes back as *ResponseError; transport
// failures wrap ErrTransport and unreadable bodies wrap ErrDecode.
//
//	c, err := client.New(client.Config{BaseURL: "https://relay.example.com", Token: token})
//	res, err := c.Submit(ctx, payload)
//	var rerr *client.ResponseError
//	if errors.As(err, &rerr) {
//	    banner := rerr.Text(fallback)
//	}
package client
