package models

import "errors"

// ErrNotFound is returned by repositories when a track or car does not
// exist. The estimation path treats it like any other lookup failure and
// degrades to the insufficient-data tier.
var ErrNotFound = errors.New("record not found")
