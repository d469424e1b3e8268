package config

import "errors"

var ErrInvalidTemperature = errors.New("temperature must be in [0, 2]")
