package auth

import "errors"

var (
	ErrConfigFile = errors.New("docker config file unusable")
	ErrEncode     = errors.New("encoding credentials failed")
)
