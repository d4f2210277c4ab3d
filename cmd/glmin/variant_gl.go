//go:build !gles

package main

import "github.com/kjkrol/glmin/internal/app"

func defaultVariant() app.Variant { return app.Desktop() }
