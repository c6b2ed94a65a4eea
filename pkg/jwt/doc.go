// Package jwt signs and verifies HS256 bearer tokens with golang-jwt.
//
// The relay accepts the same kind of anon key the form sends in its
// Authorization header:
//
//	svc, err := jwt.New(jwt.Config{Secret: os.Getenv("RELAY_JWT_SECRET")})
//	token, err := svc.Generate(jwt.Claims{Role: "anon"}, 0)
//	claims, err := svc.Parse(token)
package jwt
