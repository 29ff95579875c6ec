package web

import "embed"

// StaticFS holds the embedded static assets (dashboard HTML, JS, CSS).
//
//go:embed static/*
var StaticFS embed.FS

// docsMarkdown is the usage guide rendered by the docs page.
//
//go:embed docs.md
var docsMarkdown string
