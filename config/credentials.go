package config

import "strings"

// Credentials identifies a remote drive and its authorized user.
// The fields are passed through opaquely to the server.
type Credentials struct {
	Owner string `yaml:"owner" valid:"optional"`
	Name  string `yaml:"name" valid:"optional"`
	Token string `yaml:"token" valid:"optional"`
}

// Handshake returns the credentials serialized
// the way the sockdrive service expects them
// in the first (text) frame of a WebSocket connection.
func (c Credentials) Handshake() string {
	return c.Owner + "&" + c.Name + "&" + c.Token
}

// String implements Stringer.String,
// the token is never included.
func (c Credentials) String() string {
	return strings.TrimSuffix(c.Owner+"/"+c.Name, "/")
}
