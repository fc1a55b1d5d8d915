package web

import (
	"embed"
)

//go:embed static/index.html
var Assets embed.FS

// Page returns the game page served for every path outside the API.
func Page() []byte {
	page, err := Assets.ReadFile("static/index.html")
	if err != nil {
		// The file is compiled in; this only fails if the embed pattern changes.
		panic(err)
	}
	return page
}
