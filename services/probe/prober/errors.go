package prober

import "errors"

var errEmptyTargetURL = errors.New("empty target URL")
