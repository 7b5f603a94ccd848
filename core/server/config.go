package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// JwtSecret is the key used to verify bearer tokens issued by the auth
	// service. The server never issues tokens itself.
	JwtSecret string `mapstructure:"jwt_secret" default:""`
}

// RequiresAuth reports whether protected routes can be served. Without a
// secret every token verification would fail, so startup refuses mutating
// routes rather than silently rejecting all callers.
func (c Config) RequiresAuth() bool {
	return c.JwtSecret != ""
}
