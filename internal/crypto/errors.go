package crypto

import "errors"

var ErrHashingFailed = errors.New("password hashing failed")
