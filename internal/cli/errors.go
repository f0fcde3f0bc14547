package cmd

import "errors"

var ErrParseFailed = errors.New("url parse failed")
var ErrUnknownComponent = errors.New("unknown URL component")
var ErrReadInputFail = errors.New("failed to read input document")
