package service

import "github.com/m-mizutani/gasession/internal"

var logger = internal.Logger
