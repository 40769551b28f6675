package service

import "strings"

// Links builds public URLs for shared content.
type Links struct {
	base string
}

func NewLinks(publicURL, basePath string) *Links {
	return &Links{base: strings.TrimRight(publicURL, "/") + strings.TrimRight(basePath, "/")}
}

func (l *Links) EventURL(id string) string {
	return l.base + EventPath(id)
}
