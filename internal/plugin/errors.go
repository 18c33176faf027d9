package plugin

import "errors"

// ErrScriptFailed wraps every error raised while running a script.
var ErrScriptFailed = errors.New("script failed")
